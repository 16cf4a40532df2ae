package sessionstore

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil { // ignore any nil Options
			continue
		}
		o(opts)
	}
}

// WithKeyPrefix provides an optional key prefix, overriding
// DefaultRedisKeyPrefix. Valid for: NewRedis
func WithKeyPrefix(prefix string) Option {
	return func(o interface{}) {
		if o, ok := o.(*redisOptions); ok {
			o.withKeyPrefix = prefix
		}
	}
}

// redisOptions is the set of available options for NewRedis
type redisOptions struct {
	withKeyPrefix string
}

func redisDefaults() redisOptions {
	return redisOptions{
		withKeyPrefix: DefaultRedisKeyPrefix,
	}
}

func getRedisOpts(opt ...Option) redisOptions {
	opts := redisDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
