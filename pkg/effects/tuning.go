package effects

// TuningConfig holds the internal magic numbers for rendering frames.
type TuningConfig struct {
	// Backdrop
	BackgroundScale float64 `json:"background_scale"` // Default: 0.25 (blur a quarter-size copy)
	BackgroundDim   float64 `json:"background_dim"`   // Default: 0.35 (darken fraction)

	// Face focus
	FaceIoUThreshold     float64 `json:"face_iou_threshold"`       // Default: 0.2 (Clustering)
	FaceScaleFactor      float64 `json:"face_scale_factor"`        // Default: 1.1 (pigo internal)
	FaceDetectConfidence float32 `json:"face_detect_confidence"`   // Default: 10.0 (Base filter)
	FaceDetectMinSizePct int     `json:"face_detect_min_size_pct"` // Default: 1 (1% of min dim)
	FaceDetectShift      float64 `json:"face_detect_shift"`        // Default: 0.1 (Stride)

	// Encoding
	EncodingQuality int `json:"encoding_quality"` // Default: 95
}

// DefaultTuningConfig returns the standard values.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		BackgroundScale:      0.25,
		BackgroundDim:        0.35,
		FaceIoUThreshold:     0.2,
		FaceScaleFactor:      1.1,
		FaceDetectConfidence: 10.0,
		FaceDetectMinSizePct: 1,
		FaceDetectShift:      0.1,
		EncodingQuality:      95,
	}
}
