package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sensorlog/dht-sheets/log"
)

// SCOPES are requested when authorising. Drive metadata access is needed to
// find a spreadsheet by name.
var SCOPES = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// OAuthConfig returns the OAuth2 client configuration from an application
// credentials file.
func OAuthConfig(credentials string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, SCOPES...)
}

// authorize builds the client option for the Google API services. A service
// account key is used as is, otherwise the OAuth2 token saved by 'authorise'
// is loaded and refreshed tokens are written back to the same file.
func authorize(ctx context.Context, credentials, authorizedUser string) (option.ClientOption, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("invalid credentials file %v (%w)", credentials, err)
	}

	if probe.Type == "service_account" {
		return option.WithCredentialsFile(credentials), nil
	}

	config, err := google.ConfigFromJSON(b, SCOPES...)
	if err != nil {
		return nil, err
	}

	token, err := TokenFromFile(authorizedUser)
	if err != nil {
		return nil, fmt.Errorf("no authorised session in %v - run 'authorise' first (%w)", authorizedUser, err)
	}

	source := tokenCache{
		file:   authorizedUser,
		source: config.TokenSource(ctx, token),
		last:   token,
	}

	return option.WithTokenSource(&source), nil
}

// tokenCache saves refreshed tokens so the next login starts from the latest
// refresh token.
type tokenCache struct {
	file   string
	source oauth2.TokenSource
	guard  sync.Mutex
	last   *oauth2.Token
}

func (c *tokenCache) Token() (*oauth2.Token, error) {
	token, err := c.source.Token()
	if err != nil {
		return nil, err
	}

	c.guard.Lock()
	defer c.guard.Unlock()

	if c.last == nil || c.last.AccessToken != token.AccessToken {
		if err := SaveToken(c.file, token); err != nil {
			log.Warnf("unable to save refreshed token (%v)", err)
		}

		c.last = token
	}

	return token, nil
}

// TokenFromFile retrieves a token from a local file.
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// SaveToken writes the token to a file, replacing any existing token.
func SaveToken(file string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(file), ".token")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if err := json.NewEncoder(tmp).Encode(token); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
