// Command studio builds and edits property listing pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"google.golang.org/api/firestore/v1"
	"google.golang.org/api/storage/v1"

	"github.com/custodia-labs/listing-studio/internal/adapters/driven/ai"
	"github.com/custodia-labs/listing-studio/internal/adapters/driven/cloud/google"
	"github.com/custodia-labs/listing-studio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/listing-studio/internal/adapters/driving/cli"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/core/services"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// backend is the storage selected by the settings.
type backend struct {
	properties  driven.PropertyStore
	submissions driven.SubmissionStore
	values      driven.KeyValueStore
	blobs       driven.BlobStore
	uploader    driven.AssetUploader
	close       func() error
}

func run(ctx context.Context) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	configDir := filepath.Join(home, ".listing-studio")

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return fmt.Errorf("opening prompts: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	aiResult := ai.Init(&settings.AI, prompts)
	defer aiResult.Close()
	for _, w := range aiResult.Warnings {
		logger.Warn("AI assistant disabled: %s", w)
	}

	store, err := openBackend(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
	}()

	persist := services.NewPersistenceService(store.properties, store.submissions, store.values, aiResult.Assistant)
	workspace := services.NewWorkspace(persist, settings.Editor)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Properties:  persist,
		Backup:      persist,
		Submissions: persist,
		Location:    persist,
		Site:        persist,
		Assets:      services.NewAssetResolver(store.blobs, store.uploader),
		Workspace:   workspace,
		Settings:    settingsService,
		Admin:       services.NewAdminGate(configStore),
		WatchConfig: func(onReload func()) (func() error, error) {
			w, err := file.NewWatcher(configStore, prompts, onReload)
			if err != nil {
				return nil, err
			}
			w.Start()
			return w.Stop, nil
		},
	})

	return cli.Execute(ctx)
}

// openBackend opens the configured storage. Firestore keeps uploaded
// assets in the local database unless a bucket is set.
func openBackend(ctx context.Context, settings *domain.AppSettings) (*backend, error) {
	switch settings.Storage.Backend {
	case domain.StorageMemory:
		props, blobs := memory.NewPropertyStore(), memory.NewBlobStore()
		return &backend{
			properties:  props,
			submissions: props,
			values:      blobs,
			blobs:       blobs,
			close:       func() error { return nil },
		}, nil

	case domain.StorageFirestore:
		opts, err := google.ClientOptions(ctx, settings.Cloud, firestore.DatastoreScope, storage.DevstorageReadWriteScope)
		if err != nil {
			return nil, fmt.Errorf("google credentials: %w", err)
		}
		fs, err := google.NewStore(ctx, settings.Cloud, opts...)
		if err != nil {
			return nil, err
		}
		local, err := sqlite.NewStore(settings.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening local asset store: %w", err)
		}
		b := &backend{
			properties:  fs,
			submissions: fs,
			values:      fs,
			blobs:       local.Blobs(),
			close:       local.Close,
		}
		if settings.Cloud.Bucket != "" {
			uploader, err := google.NewUploader(ctx, settings.Cloud, opts...)
			if err != nil {
				local.Close()
				return nil, err
			}
			b.uploader = uploader
		}
		return b, nil

	default:
		db, err := sqlite.NewStore(settings.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		props := db.Properties()
		return &backend{
			properties:  props,
			submissions: props,
			values:      db.Values(),
			blobs:       db.Blobs(),
			close:       db.Close,
		}, nil
	}
}
