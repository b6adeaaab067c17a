package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/time-manager/internal/config"
)

// ErrNotAuthenticated is returned when no portal token has been stored yet.
var ErrNotAuthenticated = errors.New("not logged in to the portal (run: tm login)")

// TokenPath returns the path to the stored token file.
func TokenPath() (string, error) {
	dir, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth", "portal_token.json"), nil
}

// OAuth2Config builds the device code configuration from the portal settings.
func OAuth2Config(pc config.PortalConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID: pc.ClientID,
		Scopes:   pc.Scopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: pc.DeviceAuthURL,
			TokenURL:      pc.TokenURL,
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

func checkEndpoints(pc config.PortalConfig) error {
	if pc.ClientID == "" || pc.DeviceAuthURL == "" || pc.TokenURL == "" {
		return fmt.Errorf("%w: portal.client_id, portal.device_auth_url and portal.token_url are required", config.ErrInvalid)
	}
	return nil
}

// LoadToken loads a previously saved token. A missing file yields nil, nil.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// SaveToken persists a token with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Login runs the device code flow, printing the verification instructions to
// w, and stores the token at tokenPath.
func Login(ctx context.Context, pc config.PortalConfig, tokenPath string, w io.Writer) (*oauth2.Token, error) {
	if err := checkEndpoints(pc); err != nil {
		return nil, err
	}
	cfg := OAuth2Config(pc)

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(w, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(w, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(w)

	tok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := SaveToken(tokenPath, tok); err != nil {
		return nil, err
	}
	return tok, nil
}
