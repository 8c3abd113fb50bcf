//go:build !release

package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{
			name:     "Print",
			fn:       func() { Print("blur applied") },
			expected: "blur applied",
		},
		{
			name:     "Printf",
			fn:       func() { Printf("radius %d", 25) },
			expected: "radius 25",
		},
		{
			name:     "Println",
			fn:       func() { Println("engine released") },
			expected: "engine released",
		},
		{
			name:     "Debug",
			fn:       func() { Debug("placement fit") },
			expected: "[DEBUG] placement fit",
		},
		{
			name:     "Debugf",
			fn:       func() { Debugf("mode %s", "pan") },
			expected: "[DEBUG] mode pan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected log to contain %q, but got %q", tt.expected, buf.String())
			}
		})
	}
}
