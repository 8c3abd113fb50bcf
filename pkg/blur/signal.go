package blur

import (
	"fmt"

	"github.com/dixieflatline76/backdrop/util/log"
)

// Signal reports a degraded blur to the host, for logging only.
type Signal int

const (
	// SignalBlurUnavailable means the engine session could not be acquired.
	SignalBlurUnavailable Signal = iota
	// SignalBlurFailed means the engine failed while blurring.
	SignalBlurFailed
	// SignalInvalidInput means the source image was nil or empty.
	SignalInvalidInput
)

func (s Signal) String() string {
	switch s {
	case SignalBlurUnavailable:
		return "BlurUnavailable"
	case SignalBlurFailed:
		return "BlurFailed"
	case SignalInvalidInput:
		return "InvalidInput"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// SignalFunc receives signals. It must not block.
type SignalFunc func(sig Signal, err error)

// LogSignal is the default SignalFunc.
func LogSignal(sig Signal, err error) {
	log.Printf("blur: %s: %v", sig, err)
}
