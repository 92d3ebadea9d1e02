package core

// ProcessorConfig defines common rendering settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int

	// SmoothingSeconds is the time constant applied when a parameter
	// target changes. Zero jumps straight to the target.
	SmoothingSeconds float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:       48000,
		BlockSize:        512,
		SmoothingSeconds: 0.02,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithSmoothing sets the parameter smoothing time constant in seconds.
func WithSmoothing(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds >= 0 && IsFinite(seconds) {
			cfg.SmoothingSeconds = seconds
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
