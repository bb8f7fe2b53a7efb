// Package oauth wires the supported identity providers onto golang.org/x/oauth2
// and turns their user endpoints into user.ExternalProfile values.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/domain/user"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	GitHub   = "github"
	Google   = "google"
	Facebook = "facebook"
)

var (
	ErrUnknownProvider = errors.New("unknown identity provider")
	ErrProfile         = errors.New("identity provider profile")
)

type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange trades the authorization code for a token and reads the
	// signed-in account's profile.
	Exchange(ctx context.Context, code string) (user.ExternalProfile, error)
}

type profileDecoder func(ctx context.Context, client *http.Client, body []byte) (user.ExternalProfile, error)

type provider struct {
	name       string
	cfg        *oauth2.Config
	profileURL string
	decode     profileDecoder
}

func (p *provider) Name() string { return p.name }

func (p *provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *provider) Exchange(ctx context.Context, code string) (user.ExternalProfile, error) {
	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return user.ExternalProfile{}, fmt.Errorf("%s code exchange: %w", p.name, err)
	}

	client := p.cfg.Client(ctx, tok)
	body, err := getJSON(ctx, client, p.profileURL)
	if err != nil {
		return user.ExternalProfile{}, fmt.Errorf("%s profile: %w", p.name, err)
	}

	prof, err := p.decode(ctx, client, body)
	if err != nil {
		return user.ExternalProfile{}, err
	}
	if prof.ProviderAccountID == "" {
		return user.ExternalProfile{}, fmt.Errorf("%w: %s returned no account id", ErrProfile, p.name)
	}
	prof.Provider = p.name
	return prof, nil
}

func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProfile, res.StatusCode)
	}
	return body, nil
}

// Registry holds the providers that have client credentials configured.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(cfg config.OAuthConfig, baseURL string) *Registry {
	r := &Registry{providers: map[string]Provider{}}
	callback := func(name string) string {
		return strings.TrimRight(baseURL, "/") + "/api/auth/" + name + "/callback"
	}

	if cfg.GitHub.Enabled() {
		r.Register(newGitHub(oauthConfig(cfg.GitHub, endpoints.GitHub, callback(GitHub), "read:user", "user:email")))
	}
	if cfg.Google.Enabled() {
		r.Register(newGoogle(oauthConfig(cfg.Google, endpoints.Google, callback(Google), "openid", "profile", "email")))
	}
	if cfg.Facebook.Enabled() {
		r.Register(newFacebook(oauthConfig(cfg.Facebook, endpoints.Facebook, callback(Facebook), "email", "public_profile")))
	}
	return r
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func oauthConfig(c config.OAuthClient, endpoint oauth2.Endpoint, redirectURL string, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}
}

func decodeJSON(name string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrProfile, name, err)
	}
	return nil
}
