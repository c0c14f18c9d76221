package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mjsigg/tkd-project-poller/config"
	"github.com/mjsigg/tkd-project-poller/trigger"
)

var WatchCmd = Watch{
	interval: 0,
	debug:    false,
}

// Watch polls the Drive folder on a fixed interval (local mode).
type Watch struct {
	interval time.Duration
	debug    bool
}

func (cmd *Watch) Name() string {
	return "watch"
}

func (cmd *Watch) Description() string {
	return "Polls the Google Drive folder on a fixed interval until interrupted"
}

func (cmd *Watch) Usage() string {
	return "[--interval <duration>]"
}

func (cmd *Watch) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] watch [--interval <duration>]\n", APP)
	fmt.Println()
	fmt.Println("  Runs the poller in local mode: polls immediately and then on a fixed interval, relaying")
	fmt.Println("  to LOCAL_PROCESSOR_URL (or PROCESSOR_URL) without an identity token")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	helpEnvironment()

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s watch --interval 1m\n", APP)
	fmt.Println()
}

func (cmd *Watch) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("watch", flag.ExitOnError)

	flagset.DurationVar(&cmd.interval, "interval", cmd.interval, "Poll interval e.g. 30s. Defaults to $POLL_INTERVAL")

	return flagset
}

func (cmd *Watch) Execute(args ...any) error {
	options := getOptions(args)

	cmd.debug = options.Debug

	if cmd.interval < 0 {
		return fmt.Errorf("--interval must be positive")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, logger, err := newService(ctx, config.ModeLocal, cmd.debug)
	if err != nil {
		return err
	}

	defer service.Close()

	interval := service.Mode.(config.Local).Interval
	if cmd.interval > 0 {
		interval = cmd.interval
	}

	return trigger.Every(ctx, interval, service, logger)
}
