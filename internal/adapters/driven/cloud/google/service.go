package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// DefaultDatabase is the Firestore database used when none is configured.
const DefaultDatabase = "(default)"

// ClientOptions returns the client options authenticating as the configured
// service account, or with application default credentials when no key
// file is set.
func ClientOptions(ctx context.Context, cfg domain.CloudSettings, scopes ...string) ([]option.ClientOption, error) {
	ts, err := tokenSource(ctx, cfg.CredentialsFile, scopes)
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithTokenSource(ts)}, nil
}

func tokenSource(ctx context.Context, credentialsFile string, scopes []string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		ts, err := google.DefaultTokenSource(ctx, scopes...)
		if err != nil {
			return nil, fmt.Errorf("application default credentials: %w", err)
		}
		return ts, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", credentialsFile, err)
	}
	return creds.TokenSource, nil
}

func databaseName(cfg domain.CloudSettings) string {
	db := cfg.Database
	if db == "" {
		db = DefaultDatabase
	}
	return fmt.Sprintf("projects/%s/databases/%s", cfg.ProjectID, db)
}
