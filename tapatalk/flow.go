package tapatalk

import (
	"bytes"
	"context"
	"crypto/subtle"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// DefaultAuthBaseURL is the provider base used to build authorization
// redirect URLs.
const DefaultAuthBaseURL = "https://www.tapatalk.com"

// authPath is appended to the auth base URL when building authorization URLs.
const authPath = "/oauth"

// DefaultSeparator is written between the query parameters of an
// authorization URL.
const DefaultSeparator = "&"

// Flow coordinates one "login with Tapatalk" authorization code flow for a
// user: it issues the authorization redirect URL (persisting a one-time CSRF
// state in the user's session) and, once the provider redirects back, it
// validates the echoed state and exchanges the authorization code for an
// access token.
type Flow struct {
	app      *App
	sessions SessionStore

	authBaseURL string
	tokenURL    string
	csrfLength  int
	client      *http.Client
	randReader  io.Reader
	logger      hclog.Logger
}

// NewFlow creates a Flow for the given app, persisting the flow's pending
// state in sessions. The session store is scoped to a single end-user
// session; create one Flow per inbound request/session.
// Supported options: WithAuthBaseURL, WithTokenURL, WithCSRFLength,
// WithProviderCA, WithHTTPClient, WithRandomReader, WithLogger
func NewFlow(app *App, sessions SessionStore, opt ...Option) (*Flow, error) {
	const op = "tapatalk.NewFlow"
	opts := getFlowOpts(opt...)
	f := &Flow{
		app:         app,
		sessions:    sessions,
		authBaseURL: strings.TrimSuffix(opts.withAuthBaseURL, "/"),
		tokenURL:    opts.withTokenURL,
		csrfLength:  opts.withCSRFLength,
		client:      opts.withHTTPClient,
		randReader:  opts.withRandomReader,
		logger:      opts.withLogger,
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid flow configuration: %w", op, err)
	}
	if f.client == nil {
		client, err := newHTTPClient(opts.withProviderCA)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
		f.client = client
	}
	if f.logger == nil {
		f.logger = hclog.NewNullLogger()
	}
	return f, nil
}

// validate the flow's configuration, reporting every problem found.
func (f *Flow) validate() error {
	var result *multierror.Error
	if f.app == nil {
		result = multierror.Append(result, fmt.Errorf("app is nil: %w", ErrNilParameter))
	}
	if f.sessions == nil {
		result = multierror.Append(result, fmt.Errorf("session store is nil: %w", ErrNilParameter))
	}
	if f.csrfLength < 1 {
		result = multierror.Append(result, fmt.Errorf("csrf length not greater than zero: %w", ErrInvalidParameter))
	}
	u, err := url.Parse(f.authBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		result = multierror.Append(result, fmt.Errorf("auth base URL %q schema is not http or https: %w", f.authBaseURL, ErrInvalidParameter))
	}
	return result.ErrorOrNil()
}

// AuthURL returns the URL to redirect the user to so they can authorize the
// app. redirectURL is where the provider sends the user afterwards, carrying
// the authorization code and the echoed state; scopes are comma-joined into a
// single scope parameter.
//
// When the session already holds a pending state it is reused, so duplicate
// calls within one unconsumed login attempt embed the identical state.
// Otherwise a fresh state is generated and persisted under SessionStateKey.
// No network call is made.
// Supported options: WithSeparator
func (f *Flow) AuthURL(ctx context.Context, redirectURL string, scopes []string, opt ...Option) (string, error) {
	const op = "Flow.AuthURL"
	opts := getAuthURLOpts(opt...)
	if redirectURL == "" {
		return "", fmt.Errorf("%s: redirect URL is empty: %w", op, ErrInvalidParameter)
	}
	state, err := f.sessions.Get(ctx, SessionStateKey)
	if err != nil {
		return "", fmt.Errorf("%s: unable to read state from session: %w", op, err)
	}
	if state == "" {
		state, err = NewState(f.csrfLength, WithRandomReader(f.randReader))
		if err != nil {
			return "", fmt.Errorf("%s: unable to generate state: %w", op, err)
		}
		f.logger.Debug("issued new login state", "client_id", f.app.ID())
	}
	if err := f.sessions.Set(ctx, SessionStateKey, state); err != nil {
		return "", fmt.Errorf("%s: unable to persist state to session: %w", op, err)
	}
	// parameter order is fixed; only the separator between pairs varies
	pairs := []string{
		"client_id=" + url.QueryEscape(f.app.ID()),
		"state=" + url.QueryEscape(state),
		"response_type=code",
		"redirect_uri=" + url.QueryEscape(redirectURL),
		"scope=" + url.QueryEscape(strings.Join(scopes, ",")),
	}
	return f.authBaseURL + authPath + "?" + strings.Join(pairs, opts.withSeparator), nil
}

// Exchange completes the flow once the provider has redirected the user back:
// it reads the authorization code and echoed state from req's query
// parameters, validates the state against the session's pending state, clears
// the pending state (one-time use, cleared whatever the exchange outcome) and
// posts the code to the token endpoint. The token endpoint's response body is
// returned verbatim, uninterpreted.
//
// When req carries no code parameter the provider has not redirected back
// yet: Exchange returns (nil, nil), makes no network call and leaves the
// session untouched.
//
// The redirect URL reported to the token endpoint defaults to req's URL with
// its state parameter stripped.
// Supported options: WithRedirectURL
func (f *Flow) Exchange(ctx context.Context, req *http.Request, opt ...Option) ([]byte, error) {
	const op = "Flow.Exchange"
	opts := getExchangeOpts(opt...)
	if req == nil {
		return nil, fmt.Errorf("%s: request is nil: %w", op, ErrNilParameter)
	}
	if f.tokenURL == "" {
		return nil, fmt.Errorf("%s: no token URL was provided to NewFlow: %w", op, ErrNoTokenURL)
	}
	query := req.URL.Query()
	code := query.Get("code")
	if code == "" {
		return nil, nil
	}
	if err := f.validateState(ctx, query.Get("state")); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// the state is one-time use: clear it before the exchange so it cannot
	// be replayed even when the exchange fails
	if err := f.sessions.Delete(ctx, SessionStateKey); err != nil {
		return nil, fmt.Errorf("%s: unable to clear state from session: %w", op, err)
	}
	redirectURL := opts.withRedirectURL
	if redirectURL == "" {
		redirectURL = requestURL(req)
	}
	f.logger.Debug("exchanging authorization code", "client_id", f.app.ID(), "token_url", f.tokenURL)
	body, err := f.postExchange(ctx, code, redirectURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return body, nil
}

// validateState checks the state echoed by the provider against the session's
// pending state. The comparison is constant time to prevent timing attacks on
// the token.
func (f *Flow) validateState(ctx context.Context, reqState string) error {
	if reqState == "" {
		return fmt.Errorf("request has no state parameter: %w", ErrStateMissingFromRequest)
	}
	sessionState, err := f.sessions.Get(ctx, SessionStateKey)
	if err != nil {
		return fmt.Errorf("unable to read state from session: %w", err)
	}
	if sessionState == "" {
		return fmt.Errorf("session has no pending state: %w", ErrStateMissingFromSession)
	}
	if subtle.ConstantTimeCompare([]byte(reqState), []byte(sessionState)) != 1 {
		return ErrStateMismatch
	}
	return nil
}

func (f *Flow) postExchange(ctx context.Context, code string, redirectURL string) ([]byte, error) {
	payload := struct {
		Code        string `json:"code"`
		RedirectURL string `json:"redirectUrl"`
	}{
		Code:        code,
		RedirectURL: redirectURL,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // forward slashes in the redirect URL stay literal
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("unable to encode exchange request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("unable to create exchange request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("exchange request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read exchange response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("token endpoint returned status %d: %w", resp.StatusCode, ErrExchangeFailed)
	}
	return body, nil
}

// requestURL reconstructs the inbound request's URL with any state parameter
// stripped, which is the default redirect URL reported during the exchange.
func requestURL(req *http.Request) string {
	u := *req.URL
	q := u.Query()
	q.Del("state")
	u.RawQuery = q.Encode()
	if u.Host == "" {
		u.Host = req.Host
	}
	if u.Scheme == "" {
		if req.TLS != nil {
			u.Scheme = "https"
		} else {
			u.Scheme = "http"
		}
	}
	return u.String()
}

// newHTTPClient creates the client used for the token exchange.  It will use
// the optional CA certificate PEM if provided, otherwise it will use the
// installed system CA chain.
func newHTTPClient(caPEM string) (*http.Client, error) {
	tr := cleanhttp.DefaultPooledTransport()
	if caPEM != "" {
		certPool := x509.NewCertPool()
		if ok := certPool.AppendCertsFromPEM([]byte(caPEM)); !ok {
			return nil, ErrInvalidCACert
		}
		tr.TLSClientConfig = &tls.Config{
			RootCAs: certPool,
		}
	}
	return &http.Client{
		Transport: tr,
	}, nil
}

// flowOptions is the set of available options for NewFlow
type flowOptions struct {
	withAuthBaseURL  string
	withTokenURL     string
	withCSRFLength   int
	withProviderCA   string
	withHTTPClient   *http.Client
	withRandomReader io.Reader
	withLogger       hclog.Logger
}

// flowDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func flowDefaults() flowOptions {
	return flowOptions{
		withAuthBaseURL: DefaultAuthBaseURL,
		withCSRFLength:  DefaultCSRFLength,
	}
}

// getFlowOpts gets the flow defaults and applies the opt overrides passed in
func getFlowOpts(opt ...Option) flowOptions {
	opts := flowDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// authURLOptions is the set of available options for Flow.AuthURL
type authURLOptions struct {
	withSeparator string
}

func authURLDefaults() authURLOptions {
	return authURLOptions{
		withSeparator: DefaultSeparator,
	}
}

func getAuthURLOpts(opt ...Option) authURLOptions {
	opts := authURLDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// exchangeOptions is the set of available options for Flow.Exchange
type exchangeOptions struct {
	withRedirectURL string
}

func exchangeDefaults() exchangeOptions {
	return exchangeOptions{}
}

func getExchangeOpts(opt ...Option) exchangeOptions {
	opts := exchangeDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
