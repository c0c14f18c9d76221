package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mjsigg/tkd-project-poller/bootstrap"
	"github.com/mjsigg/tkd-project-poller/config"
	"github.com/mjsigg/tkd-project-poller/trigger"
)

var ServeCmd = Serve{
	port:  0,
	debug: false,
}

// Serve runs the poller behind an HTTP endpoint that accepts Pub/Sub push deliveries.
type Serve struct {
	port  int
	debug bool
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs an HTTP server that polls the Google Drive folder on every Pub/Sub push delivery"
}

func (cmd *Serve) Usage() string {
	return "[--port <port>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [--port <port>]\n", APP)
	fmt.Println()
	fmt.Println("  Runs the poller in scheduled mode behind an HTTP endpoint. Every POST to / runs one poll")
	fmt.Println("  and a failed poll is reported as a 500 so that the subscription retries the delivery.")
	fmt.Println("  If PUSH_AUDIENCE is set, requests must carry a Google-signed OIDC token for that audience.")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	helpEnvironment()

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s serve --port 8080\n", APP)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("serve", flag.ExitOnError)

	flagset.IntVar(&cmd.port, "port", cmd.port, "HTTP listen port. Defaults to $PORT or 8080")

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	options := getOptions(args)

	cmd.debug = options.Debug

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := bootstrap.Load(config.ModeScheduled)
	if err != nil {
		return fmt.Errorf("configuration error (%w)", err)
	}

	logger := bootstrap.Logger(cfg, cmd.debug)

	service, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	defer service.Close()

	var verifier trigger.Verifier
	if cfg.HTTP.PushAudience != "" {
		v, err := trigger.NewVerifier(ctx, cfg.HTTP.PushAudience)
		if err != nil {
			return fmt.Errorf("unable to initialise push token verifier (%w)", err)
		}

		verifier = v
	}

	port := cfg.HTTP.Port
	if cmd.port > 0 {
		port = cmd.port
	}

	handler := trigger.NewPushHandler(service, verifier, logger)

	return trigger.Serve(ctx, fmt.Sprintf(":%d", port), trigger.NewMux(handler), cfg.HTTP.H2C, logger)
}
