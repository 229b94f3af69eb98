package components

// PositionComponent 实体在屏幕上的位置
// 对滑动条而言，X 为轨道左端，Y 为轨道垂直中心
type PositionComponent struct {
	X float64
	Y float64
}
