package tapatalk

import (
	"encoding/json"
	"fmt"
)

type ClientSecret string

// RedactedClientSecret is the redacted string or json for an app's client secret
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret
func (t ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret
func (t ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}

// App identifies a registered Tapatalk application: a client id plus its
// secret. Both are fixed at construction and never change.
type App struct {
	id     string
	secret ClientSecret
}

// NewApp creates an App from a client id and secret. The id must be a string
// or an integer; numeric ids are accepted for backward compatibility and are
// stored in string form.
func NewApp(id interface{}, secret ClientSecret) (*App, error) {
	const op = "tapatalk.NewApp"
	var idStr string
	switch v := id.(type) {
	case string:
		idStr = v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		idStr = fmt.Sprintf("%d", v)
	default:
		return nil, fmt.Errorf("%s: app id must be a string or an integer, got %T: %w", op, id, ErrInvalidAppID)
	}
	if idStr == "" {
		return nil, fmt.Errorf("%s: app id is empty: %w", op, ErrInvalidParameter)
	}
	if secret == "" {
		return nil, fmt.Errorf("%s: app secret is empty: %w", op, ErrInvalidParameter)
	}
	return &App{
		id:     idStr,
		secret: secret,
	}, nil
}

// ID returns the app's client id.
func (a *App) ID() string { return a.id }

// Secret returns the app's client secret.
func (a *App) Secret() ClientSecret { return a.secret }
