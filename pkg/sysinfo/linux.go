//go:build linux

package sysinfo

import (
	"fmt"
	"os/exec"
)

func screenDimensions() (int, int, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("running xdpyinfo: %w", err)
	}
	return parseXdpyinfo(string(out))
}
