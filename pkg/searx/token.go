package searx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// expiryMargin is subtracted from expires_in so a token is refreshed
// before it can expire mid-request.
const expiryMargin = 60 * time.Second

// TokenCredentials holds the OAuth2 client-credentials settings.
type TokenCredentials struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	// Resource is the scope base; "/.default" is appended unless already
	// present.
	Resource string
	// TokenURL is the authority base, e.g. https://login.microsoftonline.com.
	TokenURL string
}

// TokenProvider obtains and caches a bearer token for the search backend.
// The cached token is shared across concurrent requests; a race between
// two expired-token checks results in two exchanges, not corruption.
type TokenProvider struct {
	creds TokenCredentials
	http  *http.Client
	stats *Stats

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

// TokenOption configures the provider.
type TokenOption func(*TokenProvider)

// WithTokenHTTPClient overrides the default http.Client.
func WithTokenHTTPClient(hc *http.Client) TokenOption {
	return func(p *TokenProvider) { p.http = hc }
}

// WithTokenNow sets a fixed clock for testing.
func WithTokenNow(now func() time.Time) TokenOption {
	return func(p *TokenProvider) { p.now = now }
}

// NewTokenProvider creates a provider for the given credentials.
func NewTokenProvider(creds TokenCredentials, stats *Stats, opts ...TokenOption) *TokenProvider {
	p := &TokenProvider{
		creds: creds,
		stats: stats,
		http:  &http.Client{Timeout: 15 * time.Second},
		now:   time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken returns a valid bearer token, performing a client-credentials
// exchange only when no unexpired token is cached.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.token != "" && p.now().Before(p.expiresAt) {
		tok := p.token
		p.mu.Unlock()
		return tok, nil
	}
	p.mu.Unlock()

	tok, expiresIn, err := p.exchange(ctx)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.token = tok
	p.expiresAt = p.now().Add(time.Duration(expiresIn)*time.Second - expiryMargin)
	p.mu.Unlock()

	if p.stats != nil {
		p.stats.RecordTokenRefresh()
	}
	zap.L().Debug("access token refreshed", zap.Int("expires_in", expiresIn))
	return tok, nil
}

func (p *TokenProvider) exchange(ctx context.Context) (string, int, error) {
	scope := p.creds.Resource
	if !strings.HasSuffix(scope, "/.default") {
		scope += "/.default"
	}

	form := url.Values{
		"client_id":     {p.creds.ClientID},
		"client_secret": {p.creds.ClientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {scope},
	}

	endpoint := strings.TrimRight(p.creds.TokenURL, "/") + "/" + p.creds.TenantID + "/oauth2/v2.0/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, eris.Wrap(err, "searx: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", 0, &AuthError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, &AuthError{Err: eris.Wrap(err, "read token response")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", 0, &AuthError{Err: eris.Wrap(err, "parse token response")}
	}
	if tr.AccessToken == "" {
		return "", 0, &AuthError{Err: eris.New("empty access_token in response")}
	}

	return tr.AccessToken, tr.ExpiresIn, nil
}
