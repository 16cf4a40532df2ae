package tapatalk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSecret_String(t *testing.T) {
	t.Parallel()
	t.Run("redacted", func(t *testing.T) {
		assert := assert.New(t)
		const want = RedactedClientSecret
		secret := ClientSecret("bob's phone number")
		assert.Equalf(want, secret.String(), "ClientSecret.String() = %v, want %v", secret.String(), want)
	})
}

func TestClientSecret_MarshalJSON(t *testing.T) {
	t.Parallel()
	t.Run("redacted", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		want := fmt.Sprintf(`"%s"`, RedactedClientSecret)
		secret := ClientSecret("bob's phone number")
		got, err := secret.MarshalJSON()
		require.NoError(err)
		assert.Equalf([]byte(want), got, "ClientSecret.MarshalJSON() = %s, want %s", got, want)
	})
}

func TestNewApp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		id        interface{}
		secret    ClientSecret
		wantID    string
		wantErr   bool
		wantIsErr error
	}{
		{
			name:   "string-id",
			id:     "YOUR_APP_ID",
			secret: "YOUR_APP_SECRET",
			wantID: "YOUR_APP_ID",
		},
		{
			name:   "int-id",
			id:     42,
			secret: "YOUR_APP_SECRET",
			wantID: "42",
		},
		{
			name:   "int64-id",
			id:     int64(9000000001),
			secret: "YOUR_APP_SECRET",
			wantID: "9000000001",
		},
		{
			name:   "uint-id",
			id:     uint(7),
			secret: "YOUR_APP_SECRET",
			wantID: "7",
		},
		{
			name:      "nil-id",
			id:        nil,
			secret:    "YOUR_APP_SECRET",
			wantErr:   true,
			wantIsErr: ErrInvalidAppID,
		},
		{
			name:      "slice-id",
			id:        []string{"42"},
			secret:    "YOUR_APP_SECRET",
			wantErr:   true,
			wantIsErr: ErrInvalidAppID,
		},
		{
			name:      "struct-id",
			id:        struct{ ID string }{ID: "42"},
			secret:    "YOUR_APP_SECRET",
			wantErr:   true,
			wantIsErr: ErrInvalidAppID,
		},
		{
			name:      "float-id",
			id:        42.0,
			secret:    "YOUR_APP_SECRET",
			wantErr:   true,
			wantIsErr: ErrInvalidAppID,
		},
		{
			name:      "empty-id",
			id:        "",
			secret:    "YOUR_APP_SECRET",
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
		{
			name:      "empty-secret",
			id:        "YOUR_APP_ID",
			secret:    "",
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			got, err := NewApp(tt.id, tt.secret)
			if tt.wantErr {
				require.Error(err)
				assert.Truef(errors.Is(err, tt.wantIsErr), "wanted \"%s\" but got \"%s\"", tt.wantIsErr, err)
				return
			}
			require.NoError(err)
			assert.Equalf(tt.wantID, got.ID(), "App.ID() = %v, want %v", got.ID(), tt.wantID)
			assert.Equalf(tt.secret, got.Secret(), "App.Secret() = %v, want %v", got.Secret(), tt.secret)
		})
	}
}
