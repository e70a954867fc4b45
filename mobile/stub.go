//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 绑定入口只在 -tags mobile 时编译，这里保证 ./... 在桌面端也能构建。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
