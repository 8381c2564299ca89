// Package steam implements the OpenID 2.0 handshake with the Steam
// community login endpoint. Steam is the only supported provider, so
// the flow is the fixed checkid_setup / check_authentication pair
// rather than a general OpenID client.
package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"steamfinder/internal/models"
)

const (
	loginEndpoint = "https://steamcommunity.com/openid/login"
	openidNS      = "http://specs.openid.net/auth/2.0"
	identifierSel = "http://specs.openid.net/auth/2.0/identifier_select"

	// claimedIDPrefix is the shape Steam returns claimed ids in; the
	// trailing path segment is the 64-bit Steam ID.
	claimedIDPrefix = "https://steamcommunity.com/openid/id/"
)

// Client drives the Steam OpenID login flow.
type Client struct {
	realm     string
	returnURL string
	http      *http.Client
}

// NewClient returns a Client for the given realm and return URL.
func NewClient(realm, returnURL string) *Client {
	return &Client{
		realm:     realm,
		returnURL: returnURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// LoginURL builds the Steam login redirect target.
func (c *Client) LoginURL() string {
	params := url.Values{
		"openid.ns":         {openidNS},
		"openid.mode":       {"checkid_setup"},
		"openid.return_to":  {c.returnURL},
		"openid.realm":      {c.realm},
		"openid.identity":   {identifierSel},
		"openid.claimed_id": {identifierSel},
	}
	return loginEndpoint + "?" + params.Encode()
}

// VerifyCallback replays the callback parameters against Steam in
// check_authentication mode and returns the verified Steam ID.
func (c *Client) VerifyCallback(ctx context.Context, params url.Values) (string, error) {
	claimedID := params.Get("openid.claimed_id")
	steamID, err := ExtractSteamID(claimedID)
	if err != nil {
		return "", err
	}

	verify := url.Values{}
	for key, values := range params {
		if strings.HasPrefix(key, "openid.") {
			verify[key] = values
		}
	}
	verify.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginEndpoint, strings.NewReader(verify.Encode()))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("steam openid verification: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if !strings.Contains(string(body), "is_valid:true") {
		return "", models.NewUnauthorizedError("Steam login could not be verified")
	}
	return steamID, nil
}

// ExtractSteamID pulls the numeric Steam ID out of an OpenID claimed id.
func ExtractSteamID(claimedID string) (string, error) {
	if !strings.HasPrefix(claimedID, claimedIDPrefix) {
		return "", models.NewValidationError("Invalid Steam OpenID claimed id")
	}
	steamID := strings.TrimPrefix(claimedID, claimedIDPrefix)
	steamID = strings.TrimSuffix(steamID, "/")
	if steamID == "" {
		return "", models.NewValidationError("Invalid Steam OpenID claimed id")
	}
	for _, r := range steamID {
		if r < '0' || r > '9' {
			return "", models.NewValidationError("Invalid Steam OpenID claimed id")
		}
	}
	return steamID, nil
}
