package normalizer

// Option is a function that configures a normalization operation
type Option func(*config)

// config holds configuration for a normalization operation
type config struct {
	shape DataframeShape
}

func applyOptions(opts ...Option) *config {
	cfg := &config{
		shape: ShapeNameKeyed,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDataframeShape selects the dataframe entry layout.
// Default: ShapeNameKeyed
func WithDataframeShape(shape DataframeShape) Option {
	return func(cfg *config) {
		cfg.shape = shape
	}
}
