package session

import (
	"github.com/gogpu/ink/history"
	"github.com/gogpu/ink/tool"
)

// Option configures a Coordinator during creation.
type Option func(*options)

type options struct {
	provider   SurfaceProvider
	toolOpts   []tool.Option
	limit      int
	onActivate func(PageContext)
}

func defaultOptions() options {
	return options{limit: history.DefaultLimit}
}

// WithProvider sets the provider used by Load.
func WithProvider(p SurfaceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithToolOptions passes options to the tool machine. A commit hook given
// here is replaced by the coordinator's own; subscribe for commits instead.
func WithToolOptions(opts ...tool.Option) Option {
	return func(o *options) {
		o.toolOpts = append(o.toolOpts, opts...)
	}
}

// WithHistoryLimit sets the per-page undo depth.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithActivateHook registers a function called each time a page context
// becomes drawable. It is the place to subscribe page-scoped listeners.
func WithActivateHook(fn func(PageContext)) Option {
	return func(o *options) {
		o.onActivate = fn
	}
}
