package tapatalk

import (
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

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

// WithRandomReader provides an optional random byte source, overriding the
// default cryptographic source used for state generation. Valid for: NewFlow,
// NewState
func WithRandomReader(r io.Reader) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *flowOptions:
			v.withRandomReader = r
		case *stateOptions:
			v.withRandomReader = r
		}
	}
}

// WithAuthBaseURL provides an optional provider base URL for building
// authorization redirect URLs, overriding DefaultAuthBaseURL. Valid for:
// NewFlow
func WithAuthBaseURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*flowOptions); ok {
			o.withAuthBaseURL = u
		}
	}
}

// WithTokenURL provides the token-exchange endpoint an authorization code is
// posted to. There is no default; Flow.Exchange fails with ErrNoTokenURL when
// it is unset. Valid for: NewFlow
func WithTokenURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*flowOptions); ok {
			o.withTokenURL = u
		}
	}
}

// WithCSRFLength provides an optional number of random bytes in generated
// states, overriding DefaultCSRFLength. Valid for: NewFlow
func WithCSRFLength(n int) Option {
	return func(o interface{}) {
		if o, ok := o.(*flowOptions); ok {
			o.withCSRFLength = n
		}
	}
}

// WithProviderCA provides an optional CA cert PEM to trust when posting to
// the token endpoint, instead of the installed system CA chain. Valid for:
// NewFlow
func WithProviderCA(caPEM string) Option {
	return func(o interface{}) {
		if o, ok := o.(*flowOptions); ok {
			o.withProviderCA = caPEM
		}
	}
}

// WithHTTPClient provides an optional http client for the token exchange,
// overriding the client the flow would otherwise build. Valid for: NewFlow
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*flowOptions); ok {
			o.withHTTPClient = c
		}
	}
}

// WithLogger provides an optional logger for the flow. Valid for: NewFlow
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*flowOptions); ok {
			o.withLogger = l
		}
	}
}

// WithSeparator provides an optional separator written between the query
// parameters of an authorization URL, for providers that expect something
// other than the default "&". Valid for: Flow.AuthURL
func WithSeparator(sep string) Option {
	return func(o interface{}) {
		if o, ok := o.(*authURLOptions); ok {
			o.withSeparator = sep
		}
	}
}

// WithRedirectURL provides an optional redirect URL reported to the token
// endpoint during the exchange, overriding the default of the inbound
// request's URL with its state parameter stripped. Valid for: Flow.Exchange
func WithRedirectURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*exchangeOptions); ok {
			o.withRedirectURL = u
		}
	}
}
