package robinhood

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hoodviz/hoodviz"
)

const tokenURL = "https://api.robinhood.com/oauth2/token/"

// clientID is Robinhood's public web client identifier, the same one the
// official web app sends.
const clientID = "c82SH0WZOsabOXGP2sxqcj34FxkvfnWRZBKlBjFS"

// Credentials for the OAuth password grant. MFA is the one-time code when the
// account has two-factor enabled; leave it empty otherwise and retry with the
// code once the first attempt triggers the challenge.
type Credentials struct {
	Username string
	Password string
	MFA      string
}

// Login exchanges credentials for a bearer token and returns the
// authenticated request headers for this run. The session lives only as this
// value; callers decide whether to persist it with SaveSession.
func Login(creds Credentials) (http.Header, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: missing username or password", hoodviz.ErrAuthentication)
	}

	body, err := json.Marshal(map[string]any{
		"grant_type":   "password",
		"scope":        "internal",
		"client_id":    clientID,
		"expires_in":   86400,
		"device_token": uuid.NewString(),
		"username":     creds.Username,
		"password":     creds.Password,
		"mfa_code":     creds.MFA,
	})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(tokenURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hoodviz.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint answered %s", hoodviz.ErrAuthentication, resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		MFARequired bool   `json:"mfa_required"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: cannot decode token response: %v", hoodviz.ErrAuthentication, err)
	}
	if token.MFARequired {
		return nil, fmt.Errorf("%w: account requires a one-time code, retry with -mfa", hoodviz.ErrAuthentication)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", hoodviz.ErrAuthentication)
	}

	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+token.AccessToken)
	headers.Set("Accept", "application/json")
	return headers, nil
}
