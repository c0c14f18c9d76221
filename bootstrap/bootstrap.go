// Package bootstrap wires a Poller from the loaded configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"

	"github.com/mjsigg/tkd-project-poller/checkpoint"
	"github.com/mjsigg/tkd-project-poller/config"
	"github.com/mjsigg/tkd-project-poller/gdrive"
	"github.com/mjsigg/tkd-project-poller/logging"
	"github.com/mjsigg/tkd-project-poller/poller"
	"github.com/mjsigg/tkd-project-poller/relay"
)

// Service is a fully wired poller plus the resources that need closing when it is retired.
type Service struct {
	*poller.Poller

	Mode       config.Mode
	Checkpoint checkpoint.Store
	Folder     *gdrive.Folder
	Relay      *relay.Client

	closers []func() error
}

func (s *Service) Close() error {
	var errs []error
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Load reads the configuration, applies the mode override (if any) and validates it.
func Load(mode string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if mode != "" {
		cfg.Mode = mode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Logger initialises the default logger from the configuration.
func Logger(cfg *config.Config, debug bool) *slog.Logger {
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}

	return logging.Init(os.Stdout, level, cfg.Log.Format)
}

// New builds the poller and its collaborators for a validated configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := cfg.ExecutionMode()
	if err != nil {
		return nil, err
	}

	service := Service{
		Mode: mode,
	}

	store, err := newCheckpointStore(ctx, cfg, &service)
	if err != nil {
		service.Close()
		return nil, err
	}

	gd, err := gdrive.NewService(ctx, cfg.Credentials, cfg.Workdir)
	if err != nil {
		service.Close()
		return nil, fmt.Errorf("unable to create Google Drive client (%w)", err)
	}

	audience, identity := mode.IdentityToken()
	sink, err := relay.NewClient(ctx, relay.Config{
		URL:           mode.Endpoint(),
		IdentityToken: identity,
		Audience:      audience,
		Timeout:       cfg.Relay.Timeout,
	})
	if err != nil {
		service.Close()
		return nil, err
	}

	service.Checkpoint = store
	service.Folder = gdrive.NewFolder(gd, cfg.FolderID, cfg.SharedDrives)
	service.Relay = sink
	service.Poller = poller.New(store, service.Folder, sink, poller.WithLogger(logger))

	logger.Debug("poller configured",
		"mode", mode.String(),
		"folder", cfg.FolderID,
		"relay", mode.Endpoint(),
		"identity-token", identity,
		"checkpoint", fmt.Sprintf("%v", store))

	return &service, nil
}

func newCheckpointStore(ctx context.Context, cfg *config.Config, service *Service) (checkpoint.Store, error) {
	switch cfg.Checkpoint.Backend {
	case config.BackendGCS:
		opts := []option.ClientOption{}
		if cfg.Credentials != "" {
			b, err := os.ReadFile(cfg.Credentials)
			if err != nil {
				return nil, err
			}

			// OAuth client files are for Drive user access only, the bucket uses default credentials
			if _, err := google.ConfigFromJSON(b, storage.DevstorageReadWriteScope); err != nil {
				opts = append(opts, option.WithCredentialsJSON(b), option.WithScopes(storage.DevstorageReadWriteScope))
			}
		}

		store, err := checkpoint.NewGCS(ctx, cfg.Checkpoint.Bucket, cfg.Checkpoint.Object, opts...)
		if err != nil {
			return nil, err
		}

		return store, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Checkpoint.Redis.Addr,
			Password: cfg.Checkpoint.Redis.Password,
			DB:       cfg.Checkpoint.Redis.DB,
		})

		service.closers = append(service.closers, client.Close)

		return checkpoint.NewRedis(client, cfg.Checkpoint.Object), nil

	case config.BackendFile:
		return checkpoint.NewFile(afero.NewOsFs(), cfg.Checkpoint.File), nil

	default:
		return nil, fmt.Errorf("%w: unknown CHECKPOINT_BACKEND '%s'", config.ErrInvalid, cfg.Checkpoint.Backend)
	}
}
