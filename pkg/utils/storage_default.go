//go:build !android

package utils

// EnsureStorageDir 确保设置存储目录存在（非 Android 平台的空实现）
// gdata 在这些平台上会自行创建目录
func EnsureStorageDir(appName string) error {
	return nil
}
