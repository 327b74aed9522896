package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"verification-gateway-backend/internal/common/config"
	"verification-gateway-backend/internal/features/verification/models"
)

const (
	defaultAPIBase       = "https://discord.com/api"
	defaultAuthorizeBase = "https://discord.com/oauth2/authorize"

	// Scopes requested from every visitor: identity plus guild list.
	oauthScope = "guilds identify"
)

// ErrNoAccessToken is returned when the token endpoint answered without an
// access_token field, which is unrecoverable for the request at hand.
var ErrNoAccessToken = errors.New("token response missing access_token")

// OAuthClient performs the outbound OAuth2 calls against the Discord API:
// authorization-code exchange, profile fetch and guild-list fetch.
type OAuthClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	redirectURI  string

	apiBase       string
	authorizeBase string
}

func NewOAuthClient(cfg *config.Config) *OAuthClient {
	return &OAuthClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		clientID:      cfg.OAuth.ClientID,
		clientSecret:  cfg.OAuth.ClientSecret,
		redirectURI:   cfg.OAuth.RedirectURI,
		apiBase:       defaultAPIBase,
		authorizeBase: defaultAuthorizeBase,
	}
}

// AuthorizeURL builds the outbound authorization URL the landing page links
// to. Pure string construction; deterministic for a given configuration.
func (c *OAuthClient) AuthorizeURL() string {
	params := url.Values{
		"client_id":     {c.clientID},
		"response_type": {"code"},
		"redirect_uri":  {c.redirectURI},
		"scope":         {oauthScope},
	}
	return fmt.Sprintf("%s?%s", c.authorizeBase, params.Encode())
}

// ExchangeCode trades a one-time authorization code for a bearer token.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (*models.OAuthToken, error) {
	data := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
	}

	endpoint := c.apiBase + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token models.OAuthToken
	if err := c.do(req, &token); err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	return &token, nil
}

// FetchProfile loads the authenticated user's profile via /users/@me.
func (c *OAuthClient) FetchProfile(ctx context.Context, token *models.OAuthToken) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.getJSON(ctx, c.apiBase+"/users/@me", token.AccessToken, &profile); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &profile, nil
}

// FetchGuilds loads the authenticated user's guild list via /users/@me/guilds.
func (c *OAuthClient) FetchGuilds(ctx context.Context, token *models.OAuthToken) ([]models.Guild, error) {
	var guilds []models.Guild
	if err := c.getJSON(ctx, c.apiBase+"/users/@me/guilds", token.AccessToken, &guilds); err != nil {
		return nil, fmt.Errorf("fetch guilds: %w", err)
	}
	return guilds, nil
}

func (c *OAuthClient) getJSON(ctx context.Context, endpoint, accessToken string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	return c.do(req, result)
}

func (c *OAuthClient) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord API error: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}
