package tapatalk

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/hashicorp/go-uuid"
)

// DefaultCSRFLength is the number of random bytes in a generated state. Hex
// encoding doubles it on the wire.
const DefaultCSRFLength = 32

// NewState generates an opaque one-time state token of length random bytes,
// hex encoded. The state binds an authorization request to its callback and
// prevents forged redirects.
// Supported options: WithRandomReader
func NewState(length int, opt ...Option) (string, error) {
	const op = "tapatalk.NewState"
	opts := getStateOpts(opt...)
	if length < 1 {
		return "", fmt.Errorf("%s: length not greater than zero: %w", op, ErrInvalidParameter)
	}
	var data []byte
	switch {
	case opts.withRandomReader != nil:
		data = make([]byte, length)
		if _, err := io.ReadFull(opts.withRandomReader, data); err != nil {
			return "", fmt.Errorf("%s: unable to read random bytes: %w", op, ErrStateGenerationFailed)
		}
	default:
		var err error
		data, err = uuid.GenerateRandomBytes(length)
		if err != nil {
			return "", fmt.Errorf("%s: unable to generate random bytes: %w", op, ErrStateGenerationFailed)
		}
	}
	return hex.EncodeToString(data), nil
}

// stateOptions is the set of available options for NewState
type stateOptions struct {
	withRandomReader io.Reader
}

// stateDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func stateDefaults() stateOptions {
	return stateOptions{}
}

// getStateOpts gets the state defaults and applies the opt overrides passed in
func getStateOpts(opt ...Option) stateOptions {
	opts := stateDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
