package core

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
	oauth2provider "github.com/caasmo/tablebook/oauth2"
	"golang.org/x/oauth2"
)

// oauth2ExchangeTimeout bounds the token exchange and user-info fetch so an
// unresponsive provider cannot hang the callback.
const oauth2ExchangeTimeout = 10 * time.Second

// OAuth2EntryHandler starts the handshake with the named provider: it
// stores a one-time state nonce and redirects the browser to the provider's
// consent page.
// Endpoints: GET /auth/withGoogle, GET /auth/withFacebook
// Authenticated: No
func (a *App) OAuth2EntryHandler(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := a.Config().Providers[providerName]
		if !ok {
			WriteJsonError(w, errorInvalidRequest)
			return
		}

		state := crypto.Oauth2State()
		if !a.OauthStates().SetWithTTL(state, providerName, 1, a.Config().OAuth2.StateTTL.Duration) {
			a.Logger().Error("failed to store oauth2 state", "provider", providerName)
			WriteJsonError(w, errorStoreFailure)
			return
		}

		conf := a.oauth2Config(provider)
		http.Redirect(w, r, conf.AuthCodeURL(state), http.StatusFound)
	}
}

// OAuth2CallbackHandler finishes the handshake: it consumes the state
// nonce, exchanges the code, maps the external profile to a local user and
// redirects to the client with the issued credential in the query string.
// Endpoints: GET /auth/withGoogle/callback, GET /auth/withFacebook/callback
// Authenticated: No
//
// The handshake always completes with a redirect: any failure after the
// state check redirects with an empty token instead of an error response.
// The credential rides this callback's own redirect, so concurrent logins
// cannot observe each other's token.
func (a *App) OAuth2CallbackHandler(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := a.Config().Providers[providerName]
		if !ok {
			WriteJsonError(w, errorInvalidRequest)
			return
		}

		state := r.URL.Query().Get("state")
		owner, found := a.OauthStates().Get(state)
		if state == "" || !found || owner != providerName {
			WriteJsonError(w, errorInvalidRequest)
			return
		}
		// One-time: a replayed callback fails the lookup above.
		a.OauthStates().Del(state)

		token := a.completeOAuth2(r, provider)
		a.redirectToClient(w, r, token)
	}
}

// completeOAuth2 runs the fallible part of the callback and returns the
// session credential, or "" when any step fails.
func (a *App) completeOAuth2(r *http.Request, provider config.OAuth2Provider) string {
	ctx, cancel := context.WithTimeout(r.Context(), oauth2ExchangeTimeout)
	defer cancel()

	code := r.URL.Query().Get("code")
	if code == "" {
		return ""
	}

	conf := a.oauth2Config(provider)
	exchanged, err := conf.Exchange(ctx, code)
	if err != nil {
		a.Logger().Error("oauth2 token exchange failed", "provider", provider.Name, "err", err)
		return ""
	}

	client := conf.Client(ctx, exchanged)
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		a.Logger().Error("oauth2 user info failed", "provider", provider.Name, "err", err)
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	profile, err := oauth2provider.ProfileFromUserInfo(body, provider.Name)
	if err != nil {
		a.Logger().Error("oauth2 profile mapping failed", "provider", provider.Name, "err", err)
		return ""
	}

	user, err := a.bridgeProfile(provider.Name, profile)
	if err != nil {
		a.Logger().Error("oauth2 bridge failed", "provider", provider.Name, "err", err)
		return ""
	}

	cfg := a.Config()
	jwtToken, _, err := crypto.NewSessionToken(*user, cfg.Jwt.Secret(), cfg.Jwt.SessionDuration.Duration)
	if err != nil {
		a.Logger().Error("failed to issue session token", "user_id", user.ID, "err", err)
		return ""
	}
	return jwtToken
}

// bridgeProfile maps an external profile to a local user record,
// creating it on first login. Google identities key by email, Facebook
// identities by their provider id. Repeat logins never create a second
// row; they only lift the verified flag.
func (a *App) bridgeProfile(providerName string, profile *oauth2provider.Profile) (*db.User, error) {
	var user *db.User
	var err error
	switch providerName {
	case config.ProviderFacebook:
		user, err = a.DbAuth().GetUserByFacebookID(profile.FacebookID)
	default:
		user, err = a.DbAuth().GetUserByEmail(profile.Email)
	}
	if err != nil {
		return nil, err
	}

	if user == nil {
		hashed, err := crypto.GenerateHash(a.Config().OAuth2.DefaultPassword)
		if err != nil {
			return nil, err
		}
		return a.DbAuth().CreateUser(db.User{
			Email:      profile.Email,
			FirstName:  profile.FirstName,
			LastName:   profile.LastName,
			Password:   string(hashed),
			Role:       db.RoleUser,
			Verified:   true,
			FacebookID: profile.FacebookID,
		})
	}

	if !user.Verified {
		if err := a.DbAuth().MarkVerified(user.ID); err != nil {
			return nil, err
		}
		user.Verified = true
	}
	return user, nil
}

func (a *App) oauth2Config(provider config.OAuth2Provider) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     provider.ClientID,
		ClientSecret: provider.ClientSecret,
		RedirectURL:  provider.RedirectURL,
		Scopes:       provider.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.AuthURL,
			TokenURL: provider.TokenURL,
		},
	}
}

// redirectToClient sends the browser back to the front end with the issued
// credential, or an empty token signaling failure.
func (a *App) redirectToClient(w http.ResponseWriter, r *http.Request, token string) {
	dest := a.Config().OAuth2.ClientRedirectURL + "?token=" + url.QueryEscape(token)
	http.Redirect(w, r, dest, http.StatusFound)
}
