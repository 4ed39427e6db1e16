package nanotar

import "log/slog"

// createConfig holds configuration for archive encoding.
type createConfig struct {
	defaults    Attrs
	compression Compression
	logger      *slog.Logger
}

func newCreateConfig(opts ...CreateOption) createConfig {
	cfg := createConfig{compression: CompressionGzip}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// log returns the configured logger, or a discard logger when none is set.
func (cfg *createConfig) log() *slog.Logger {
	if cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.logger
}

// CreateOption configures archive encoding.
type CreateOption func(*createConfig)

// CreateWithDefaults sets archive-wide default attributes. A default applies
// to every entry whose own Attrs leave that field unset; fields the defaults
// also leave unset fall back to mode 0o775 for directories and 0o664 for
// files, uid and gid 1000, and the encoding time.
func CreateWithDefaults(defaults Attrs) CreateOption {
	return func(cfg *createConfig) {
		cfg.defaults = defaults
	}
}

// CreateWithCompression sets the algorithm CreateGzip and CreateGzipStream
// encode with. The default is CompressionGzip; Create itself ignores it.
func CreateWithCompression(c Compression) CreateOption {
	return func(cfg *createConfig) {
		cfg.compression = c
	}
}

// CreateWithLogger sets the logger for encode events. Logging is off by
// default.
func CreateWithLogger(logger *slog.Logger) CreateOption {
	return func(cfg *createConfig) {
		cfg.logger = logger
	}
}
