//go:build !windows
// +build !windows

package singleton

// Mutex 非 Windows 平台占位实现
type Mutex struct{}

// Close 释放互斥锁
func (m *Mutex) Close() error {
	return nil
}

// EnsureSingleInstance 非 Windows 平台不做单实例检测
func EnsureSingleInstance(appName string) (*Mutex, error) {
	return &Mutex{}, nil
}
