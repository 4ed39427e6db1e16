package nanotar

import "log/slog"

// parseConfig holds configuration for archive decoding.
type parseConfig struct {
	filter      func(*Entry) bool
	metaOnly    bool
	compression Compression
	logger      *slog.Logger
}

func newParseConfig(opts ...ParseOption) parseConfig {
	cfg := parseConfig{compression: CompressionGzip}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// log returns the configured logger, or a discard logger when none is set.
func (cfg *parseConfig) log() *slog.Logger {
	if cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.logger
}

// ParseOption configures archive decoding.
type ParseOption func(*parseConfig)

// ParseWithFilter keeps only entries accepted by fn. The filter sees each
// entry with its metadata populated but no payload attached, so rejected
// entries never cost a payload slice.
func ParseWithFilter(fn func(*Entry) bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.filter = fn
	}
}

// ParseWithMetaOnly suppresses payload slicing entirely. Decoded entries
// carry metadata only, with Data left nil.
func ParseWithMetaOnly(metaOnly bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.metaOnly = metaOnly
	}
}

// ParseWithCompression sets the algorithm ParseGzip decompresses with.
// The default is CompressionGzip; Parse itself ignores it.
func ParseWithCompression(c Compression) ParseOption {
	return func(cfg *parseConfig) {
		cfg.compression = c
	}
}

// ParseWithLogger sets the logger for decode events. Logging is off by
// default.
func ParseWithLogger(logger *slog.Logger) ParseOption {
	return func(cfg *parseConfig) {
		cfg.logger = logger
	}
}
