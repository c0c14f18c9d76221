package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const SCOPE = drive.DriveReadonlyScope

// NewService creates a Drive client. The credentials file may be either a service account key
// or an OAuth client (installed application) file. For OAuth clients the token cached by the
// 'authorise' command is used. Application default credentials are used if no credentials
// file is given.
func NewService(ctx context.Context, credentials, workdir string, opts ...option.ClientOption) (*drive.Service, error) {
	if strings.TrimSpace(credentials) == "" {
		return drive.NewService(ctx, append([]option.ClientOption{option.WithScopes(SCOPE)}, opts...)...)
	}

	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	if config, err := google.ConfigFromJSON(b, SCOPE); err == nil {
		tokens := TokenFile(credentials, workdir)
		token, err := TokenFromFile(tokens)
		if err != nil {
			return nil, fmt.Errorf("no OAuth token in %s - run 'authorise' first (%w)", tokens, err)
		}

		client := config.Client(ctx, token)

		return drive.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)...)
	}

	creds, err := google.CredentialsFromJSON(ctx, b, SCOPE)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials file %s (%w)", credentials, err)
	}

	return drive.NewService(ctx, append([]option.ClientOption{option.WithCredentials(creds)}, opts...)...)
}

// TokenFile returns the path of the cached OAuth token for a credentials file.
func TokenFile(credentials, workdir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(workdir, ".google", fmt.Sprintf("%s.drive", name))
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

// SaveToken saves a token to a file path, creating the directory if necessary.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token (%w)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
