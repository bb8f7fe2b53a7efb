package oauth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"jobboard/internal/domain/user"

	"golang.org/x/oauth2"
)

const (
	gitHubUserURL   = "https://api.github.com/user"
	gitHubEmailsURL = "https://api.github.com/user/emails"
	googleUserURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	facebookUserURL = "https://graph.facebook.com/me?fields=id,name,email,picture"
)

func newGitHub(cfg *oauth2.Config) *provider {
	return newGitHubWithURLs(cfg, gitHubUserURL, gitHubEmailsURL)
}

func newGitHubWithURLs(cfg *oauth2.Config, userURL, emailsURL string) *provider {
	return &provider{
		name:       GitHub,
		cfg:        cfg,
		profileURL: userURL,
		decode: func(ctx context.Context, client *http.Client, body []byte) (user.ExternalProfile, error) {
			var u struct {
				ID        int64  `json:"id"`
				Login     string `json:"login"`
				Name      string `json:"name"`
				Email     string `json:"email"`
				AvatarURL string `json:"avatar_url"`
			}
			if err := decodeJSON(GitHub, body, &u); err != nil {
				return user.ExternalProfile{}, err
			}

			p := user.ExternalProfile{
				Name:  u.Name,
				Image: u.AvatarURL,
			}
			if u.ID != 0 {
				p.ProviderAccountID = strconv.FormatInt(u.ID, 10)
			}
			if p.Name == "" {
				p.Name = u.Login
			}
			// The profile email carries no verification state; the emails
			// endpoint does, and also lists private addresses.
			p.Email, p.EmailVerified = u.Email, false
			if emailsURL != "" {
				if email, verified := gitHubEmail(ctx, client, emailsURL, u.Email); email != "" {
					p.Email, p.EmailVerified = email, verified
				}
			}
			return p, nil
		},
	}
}

// gitHubEmail returns the listed entry for public, or the primary verified
// address when public is empty, together with its verification state.
func gitHubEmail(ctx context.Context, client *http.Client, url, public string) (string, bool) {
	body, err := getJSON(ctx, client, url)
	if err != nil {
		return "", false
	}
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := decodeJSON(GitHub, body, &emails); err != nil {
		return "", false
	}
	for _, e := range emails {
		if public != "" && strings.EqualFold(e.Email, public) {
			return e.Email, e.Verified
		}
		if public == "" && e.Primary && e.Verified {
			return e.Email, true
		}
	}
	return "", false
}

func newGoogle(cfg *oauth2.Config) *provider {
	return newGoogleWithURL(cfg, googleUserURL)
}

func newGoogleWithURL(cfg *oauth2.Config, userURL string) *provider {
	return &provider{
		name:       Google,
		cfg:        cfg,
		profileURL: userURL,
		decode: func(_ context.Context, _ *http.Client, body []byte) (user.ExternalProfile, error) {
			var u struct {
				Sub           string `json:"sub"`
				Name          string `json:"name"`
				Email         string `json:"email"`
				EmailVerified bool   `json:"email_verified"`
				Picture       string `json:"picture"`
			}
			if err := decodeJSON(Google, body, &u); err != nil {
				return user.ExternalProfile{}, err
			}
			return user.ExternalProfile{
				ProviderAccountID: u.Sub,
				Name:              u.Name,
				Email:             u.Email,
				EmailVerified:     u.EmailVerified,
				Image:             u.Picture,
			}, nil
		},
	}
}

func newFacebook(cfg *oauth2.Config) *provider {
	return newFacebookWithURL(cfg, facebookUserURL)
}

func newFacebookWithURL(cfg *oauth2.Config, userURL string) *provider {
	return &provider{
		name:       Facebook,
		cfg:        cfg,
		profileURL: userURL,
		decode: func(_ context.Context, _ *http.Client, body []byte) (user.ExternalProfile, error) {
			var u struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Email   string `json:"email"`
				Picture struct {
					Data struct {
						URL string `json:"url"`
					} `json:"data"`
				} `json:"picture"`
			}
			if err := decodeJSON(Facebook, body, &u); err != nil {
				return user.ExternalProfile{}, err
			}
			// The Graph API does not attest ownership of the email, so it is
			// never used to link or sync accounts.
			return user.ExternalProfile{
				ProviderAccountID: u.ID,
				Name:              u.Name,
				Email:             u.Email,
				Image:             u.Picture.Data.URL,
			}, nil
		},
	}
}
