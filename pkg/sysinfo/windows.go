//go:build windows

package sysinfo

import (
	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

func screenDimensions() (int, int, error) {
	width, _, err := getSystemMetrics.Call(uintptr(smCXScreen))
	if err != windows.NOERROR {
		return 0, 0, err
	}
	height, _, err := getSystemMetrics.Call(uintptr(smCYScreen))
	if err != windows.NOERROR {
		return 0, 0, err
	}
	return int(width), int(height), nil
}
