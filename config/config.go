// Package config loads the poller configuration from the environment.
//
// Configuration is read once at startup (optionally seeded from a .env file) into a Config
// struct which is then passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrMissing = errors.New("missing required configuration")
	ErrInvalid = errors.New("invalid configuration")
)

const (
	ModeScheduled = "scheduled"
	ModeLocal     = "local"
)

const (
	BackendGCS   = "gcs"
	BackendRedis = "redis"
	BackendFile  = "file"
)

type Config struct {
	// FolderID is the Google Drive folder watched for new or modified spreadsheets.
	FolderID string `env:"DRIVE_FOLDER_ID"`

	// ProcessorURL is the relay sink that receives exported spreadsheets.
	ProcessorURL string `env:"PROCESSOR_URL"`

	// LocalProcessorURL overrides ProcessorURL in local mode.
	LocalProcessorURL string `env:"LOCAL_PROCESSOR_URL"`

	// Credentials is an optional service account or OAuth client credentials file. Application
	// default credentials are used if it is not set.
	Credentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	Workdir      string        `env:"WORKDIR"`
	Mode         string        `env:"MODE" envDefault:"scheduled"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"5m"`
	SharedDrives bool          `env:"SHARED_DRIVES" envDefault:"false"`

	Checkpoint CheckpointConfig
	Relay      RelayConfig
	HTTP       HTTPConfig
	Log        LogConfig
}

type CheckpointConfig struct {
	Backend string `env:"CHECKPOINT_BACKEND" envDefault:"gcs"`
	Bucket  string `env:"CHECKPOINT_BUCKET"`
	Object  string `env:"CHECKPOINT_OBJECT" envDefault:"last_checked.txt"`
	File    string `env:"CHECKPOINT_FILE"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type RelayConfig struct {
	// Audience for the identity token attached in scheduled mode. Defaults to the relay URL.
	Audience string        `env:"RELAY_AUDIENCE"`
	Timeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"0s"`
}

type HTTPConfig struct {
	Port         int    `env:"PORT" envDefault:"8080"`
	H2C          bool   `env:"H2C" envDefault:"false"`
	PushAudience string `env:"PUSH_AUDIENCE"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads the configuration from the process environment, after loading a .env file from
// the working directory if one exists. The returned configuration is sanitized but not
// validated - callers apply any overrides and then invoke Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg.Sanitize()

	return &cfg, nil
}

// Parse builds a configuration from an explicit set of environment variables.
func Parse(environment map[string]string) (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg.Sanitize()

	return &cfg, nil
}

// Sanitize trims the loaded values and fills in the defaults that depend on other settings.
func (c *Config) Sanitize() {
	c.FolderID = strings.TrimSpace(c.FolderID)
	c.ProcessorURL = strings.TrimSpace(c.ProcessorURL)
	c.LocalProcessorURL = strings.TrimSpace(c.LocalProcessorURL)
	c.Credentials = strings.TrimSpace(c.Credentials)
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Checkpoint.Backend = strings.ToLower(strings.TrimSpace(c.Checkpoint.Backend))
	c.Checkpoint.Bucket = strings.TrimSpace(c.Checkpoint.Bucket)
	c.Checkpoint.Object = strings.TrimSpace(c.Checkpoint.Object)

	if strings.TrimSpace(c.Workdir) == "" {
		c.Workdir = DEFAULT_WORKDIR
	}

	if c.Checkpoint.Object == "" {
		c.Checkpoint.Object = "last_checked.txt"
	}

	if strings.TrimSpace(c.Checkpoint.File) == "" {
		c.Checkpoint.File = filepath.Join(c.Workdir, c.Checkpoint.Object)
	}

	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
}

// Validate checks that everything the selected mode and checkpoint backend need is present.
func (c *Config) Validate() error {
	if c.FolderID == "" {
		return fmt.Errorf("%w: DRIVE_FOLDER_ID", ErrMissing)
	}

	switch c.Mode {
	case ModeScheduled:
		if c.ProcessorURL == "" {
			return fmt.Errorf("%w: PROCESSOR_URL", ErrMissing)
		}

	case ModeLocal:
		if c.ProcessorURL == "" && c.LocalProcessorURL == "" {
			return fmt.Errorf("%w: PROCESSOR_URL or LOCAL_PROCESSOR_URL", ErrMissing)
		}

		if c.PollInterval <= 0 {
			return fmt.Errorf("%w: POLL_INTERVAL must be positive (%v)", ErrInvalid, c.PollInterval)
		}

	default:
		return fmt.Errorf("%w: unknown MODE '%s'", ErrInvalid, c.Mode)
	}

	switch c.Checkpoint.Backend {
	case BackendGCS:
		if c.Checkpoint.Bucket == "" {
			return fmt.Errorf("%w: CHECKPOINT_BUCKET", ErrMissing)
		}

	case BackendRedis:
		if strings.TrimSpace(c.Checkpoint.Redis.Addr) == "" {
			return fmt.Errorf("%w: REDIS_ADDR", ErrMissing)
		}

	case BackendFile:

	default:
		return fmt.Errorf("%w: unknown CHECKPOINT_BACKEND '%s'", ErrInvalid, c.Checkpoint.Backend)
	}

	return nil
}

// ExecutionMode returns the execution mode variant selected by the configuration.
func (c *Config) ExecutionMode() (Mode, error) {
	switch c.Mode {
	case ModeScheduled:
		audience := c.Relay.Audience
		if audience == "" {
			audience = c.ProcessorURL
		}

		return Scheduled{
			RelayURL: c.ProcessorURL,
			Audience: audience,
		}, nil

	case ModeLocal:
		url := c.LocalProcessorURL
		if url == "" {
			url = c.ProcessorURL
		}

		return Local{
			RelayURL: url,
			Interval: c.PollInterval,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown MODE '%s'", ErrInvalid, c.Mode)
	}
}
