//go:build darwin

package sysinfo

import (
	"fmt"
	"os/exec"
)

func screenDimensions() (int, int, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("running system_profiler: %w", err)
	}
	return parseSystemProfiler(out)
}
