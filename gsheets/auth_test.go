package gsheets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestSaveToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gspread", "authorized_user.json")
	token := oauth2.Token{
		AccessToken:  "ya29.qwerty",
		TokenType:    "Bearer",
		RefreshToken: "1//uiop",
		Expiry:       time.Date(2024, time.March, 5, 14, 2, 7, 0, time.UTC),
	}

	if err := SaveToken(file, &token); err != nil {
		t.Fatalf("Unexpected error saving token (%v)", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("Error reading token file (%v)", err)
	} else if info.Mode().Perm() != 0600 {
		t.Errorf("Incorrect token file permissions - expected:%v, got:%v", os.FileMode(0600), info.Mode().Perm())
	}

	retrieved, err := TokenFromFile(file)
	if err != nil {
		t.Fatalf("Unexpected error loading token (%v)", err)
	}

	if retrieved.AccessToken != token.AccessToken || retrieved.RefreshToken != token.RefreshToken || !retrieved.Expiry.Equal(token.Expiry) {
		t.Errorf("Incorrect token\n   expected: %+v\n   got:      %+v", token, *retrieved)
	}
}

func TestAuthorizeWithoutSession(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "credentials.json")
	secrets := `{"installed":{"client_id":"qwerty.apps.googleusercontent.com","client_secret":"uiop","redirect_uris":["http://localhost"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`

	if err := os.WriteFile(credentials, []byte(secrets), 0600); err != nil {
		t.Fatalf("Error creating credentials file (%v)", err)
	}

	_, err := authorize(context.Background(), credentials, filepath.Join(dir, "authorized_user.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected 'not exist' error for missing authorised session, got %v", err)
	}
}

func TestAuthorizeWithMissingCredentials(t *testing.T) {
	dir := t.TempDir()

	if _, err := authorize(context.Background(), filepath.Join(dir, "credentials.json"), filepath.Join(dir, "authorized_user.json")); err == nil {
		t.Errorf("Expected error for missing credentials file")
	}
}

type fakeTokenSource struct {
	tokens []*oauth2.Token
	calls  int
}

func (f *fakeTokenSource) Token() (*oauth2.Token, error) {
	token := f.tokens[f.calls]
	f.calls++

	return token, nil
}

func TestTokenCacheSavesRefreshedToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "authorized_user.json")
	initial := &oauth2.Token{AccessToken: "ya29.initial", RefreshToken: "1//uiop"}
	refreshed := &oauth2.Token{AccessToken: "ya29.refreshed", RefreshToken: "1//uiop"}

	cache := tokenCache{
		file:   file,
		source: &fakeTokenSource{tokens: []*oauth2.Token{initial, refreshed}},
		last:   initial,
	}

	if _, err := cache.Token(); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if _, err := os.Stat(file); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected unchanged token to not be saved")
	}

	if _, err := cache.Token(); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	saved, err := TokenFromFile(file)
	if err != nil {
		t.Fatalf("Expected refreshed token to be saved (%v)", err)
	}

	if !reflect.DeepEqual(saved.AccessToken, refreshed.AccessToken) {
		t.Errorf("Incorrect saved token - expected:%v, got:%v", refreshed.AccessToken, saved.AccessToken)
	}
}
