package tool

import (
	"github.com/gogpu/ink/signature"
)

// Option configures a Machine during creation.
//
// Example:
//
//	m := tool.New(tool.WithStamper(s), tool.WithCommitHook(onCommit))
type Option func(*options)

// options holds optional configuration for Machine creation.
type options struct {
	stamper *signature.Stamper
	hook    CommitHook
	configs map[Kind]Config
}

// defaultOptions returns the default machine options.
func defaultOptions() options {
	return options{
		stamper: signature.NewStamper(),
		configs: map[Kind]Config{
			Marker:    Default(Marker),
			Eraser:    Default(Eraser),
			Whiteout:  Default(Whiteout),
			Signature: Default(Signature),
		},
	}
}

// WithStamper sets the stamper used by the signature tool.
func WithStamper(s *signature.Stamper) Option {
	return func(o *options) {
		if s != nil {
			o.stamper = s
		}
	}
}

// WithCommitHook registers a function called after every committed stroke,
// stamp or page clear.
func WithCommitHook(h CommitHook) Option {
	return func(o *options) {
		o.hook = h
	}
}

// WithDefaults overrides the configuration Toggle selects for a tool kind.
func WithDefaults(cfg Config) Option {
	return func(o *options) {
		o.configs[cfg.Kind] = cfg.Clamp()
	}
}
