package commands

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mjsigg/tkd-project-poller/bootstrap"
)

const APP = "tkd-project-poller"

type Options struct {
	Debug bool
}

func getOptions(args []any) *Options {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok && options != nil {
			return options
		}
	}

	return &Options{}
}

// newService loads and validates the configuration for the mode and wires the poller.
func newService(ctx context.Context, mode string, debug bool) (*bootstrap.Service, *slog.Logger, error) {
	cfg, err := bootstrap.Load(mode)
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error (%w)", err)
	}

	logger := bootstrap.Logger(cfg, debug)

	service, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return service, logger, nil
}

func spreadsheetID(v string) (string, error) {
	s := strings.TrimSpace(v)
	if match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(s); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`).MatchString(s) {
		return s, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func helpEnvironment() {
	fmt.Println()
	fmt.Println("  Environment:")
	fmt.Println("    DRIVE_FOLDER_ID                 Google Drive folder to poll (required)")
	fmt.Println("    PROCESSOR_URL                   Relay sink URL (required in scheduled mode)")
	fmt.Println("    LOCAL_PROCESSOR_URL             Relay sink URL override for local mode")
	fmt.Println("    CHECKPOINT_BACKEND              gcs, redis or file (defaults to gcs)")
	fmt.Println("    CHECKPOINT_BUCKET               Cloud Storage bucket for the checkpoint (gcs backend)")
	fmt.Println("    CHECKPOINT_OBJECT               Checkpoint object/key name (defaults to last_checked.txt)")
	fmt.Println("    CHECKPOINT_FILE                 Checkpoint file (file backend)")
	fmt.Println("    REDIS_ADDR                      Redis server address (redis backend)")
	fmt.Println("    GOOGLE_APPLICATION_CREDENTIALS  Service account or OAuth client credentials file")
	fmt.Println("    POLL_INTERVAL                   Poll interval for local mode (defaults to 5m)")
	fmt.Println("    LOG_LEVEL, LOG_FORMAT           debug/info/warn/error, json/text")
}

func debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	slog.Info(fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...))
}
