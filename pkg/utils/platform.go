//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 可以通过设置环境变量 MERGEROOM_MOBILE_EMULATE=1 在桌面上模拟触屏布局
func IsMobile() bool {
	return os.Getenv("MERGEROOM_MOBILE_EMULATE") == "1"
}
