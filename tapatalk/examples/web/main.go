// web is a minimal server showing "login with Tapatalk": /login redirects the
// user to the provider's authorization URL and /callback completes the flow by
// exchanging the authorization code for an access token.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tapatalk/login-go/tapatalk"
	"github.com/tapatalk/login-go/tapatalk/sessionstore"
)

// List of required configuration environment variables
const (
	appID     = "TAPATALK_APP_ID"
	appSecret = "TAPATALK_APP_SECRET"
	tokenURL  = "TAPATALK_TOKEN_URL"
	port      = "TAPATALK_PORT"
)

const sessionCookie = "tapatalk-example-session"

func envConfig() (map[string]string, error) {
	const op = "envConfig"
	env := map[string]string{
		appID:     os.Getenv(appID),
		appSecret: os.Getenv(appSecret),
		tokenURL:  os.Getenv(tokenURL),
		port:      os.Getenv(port),
	}
	for k, v := range env {
		if v == "" {
			return nil, fmt.Errorf("%s: %s is empty", op, k)
		}
	}
	return env, nil
}

// sessionID reads the browser's session cookie, setting a fresh one when none
// is present yet.
func sessionID(w http.ResponseWriter, req *http.Request) (string, error) {
	if c, err := req.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("unable to generate session id: %w", err)
	}
	id := hex.EncodeToString(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "tapatalk-example",
		Level: hclog.Debug,
	})

	env, err := envConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", err)
		return
	}

	app, err := tapatalk.NewApp(env[appID], tapatalk.ClientSecret(env[appSecret]))
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return
	}

	// sessions from abandoned login attempts expire after ten minutes
	sessions := sessionstore.NewMemory(10 * time.Minute)

	newFlow := func(w http.ResponseWriter, req *http.Request) (*tapatalk.Flow, error) {
		id, err := sessionID(w, req)
		if err != nil {
			return nil, err
		}
		return tapatalk.NewFlow(app, sessions.Session(id),
			tapatalk.WithTokenURL(env[tokenURL]),
			tapatalk.WithLogger(logger),
		)
	}
	redirectURL := fmt.Sprintf("http://localhost:%s/callback", env[port])

	http.HandleFunc("/login", func(w http.ResponseWriter, req *http.Request) {
		flow, err := newFlow(w, req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		authURL, err := flow.AuthURL(req.Context(), redirectURL, []string{"read", "write"})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, req, authURL, http.StatusFound)
	})

	http.HandleFunc("/callback", func(w http.ResponseWriter, req *http.Request) {
		flow, err := newFlow(w, req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		token, err := flow.Exchange(req.Context(), req)
		if err != nil {
			logger.Error("login failed", "error", err)
			http.Error(w, "login failed", http.StatusForbidden)
			return
		}
		if token == nil {
			http.Redirect(w, req, "/login", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(token)
	})

	logger.Info("listening", "port", env[port])
	if err := http.ListenAndServe(":"+env[port], nil); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
