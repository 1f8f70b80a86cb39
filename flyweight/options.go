package flyweight

import "github.com/jonwraymond/flyweight/observe"

// Option configures a Registry.
type Option func(*options)

type options struct {
	name       string
	keyer      Keyer
	middleware *observe.Middleware
	logger     observe.Logger
}

// WithName sets the registry name reported in telemetry.
func WithName(name string) Option { return func(o *options) { o.name = name } }

// WithKeyer replaces the default DelimitedKeyer.
func WithKeyer(k Keyer) Option { return func(o *options) { o.keyer = k } }

// WithMiddleware instruments lookups with tracing, metrics, and logging.
func WithMiddleware(m *observe.Middleware) Option { return func(o *options) { o.middleware = m } }

// WithLogger sets the logger, overriding the middleware's logger if both are set.
func WithLogger(l observe.Logger) Option { return func(o *options) { o.logger = l } }

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.keyer == nil {
		o.keyer = DelimitedKeyer{}
	}
	if o.middleware == nil {
		o.middleware = observe.NopMiddleware()
	}
	if o.logger != nil {
		o.middleware = o.middleware.WithLogger(o.logger)
	}
	return o
}
