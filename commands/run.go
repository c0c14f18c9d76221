package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/mjsigg/tkd-project-poller/checkpoint"
	"github.com/mjsigg/tkd-project-poller/config"
)

var RunCmd = Run{
	mode:  "",
	debug: false,
}

// Run polls the Drive folder once, e.g. from a cron job.
type Run struct {
	mode  string
	debug bool
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Polls the Google Drive folder once and relays any new or modified spreadsheets"
}

func (cmd *Run) Usage() string {
	return "[--mode scheduled|local]"
}

func (cmd *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] run [--mode scheduled|local]\n", APP)
	fmt.Println()
	fmt.Println("  Polls the Google Drive folder once, relays the spreadsheets modified since the last")
	fmt.Println("  checkpoint and advances the checkpoint")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	helpEnvironment()

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s run\n", APP)
	fmt.Printf("    %s --debug run --mode local\n", APP)
	fmt.Println()
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("run", flag.ExitOnError)

	flagset.StringVar(&cmd.mode, "mode", cmd.mode, "Execution mode (scheduled or local). Defaults to $MODE")

	return flagset
}

func (cmd *Run) Execute(args ...any) error {
	options := getOptions(args)

	cmd.debug = options.Debug

	mode := strings.ToLower(strings.TrimSpace(cmd.mode))
	if mode != "" && mode != config.ModeScheduled && mode != config.ModeLocal {
		return fmt.Errorf("--mode must be either '%s' or '%s'", config.ModeScheduled, config.ModeLocal)
	}

	ctx := context.Background()

	service, _, err := newService(ctx, mode, cmd.debug)
	if err != nil {
		return err
	}

	defer service.Close()

	summary, err := service.Run(ctx)
	if err != nil {
		return fmt.Errorf("poll failed (%w)", err)
	}

	infof("found:%v  relayed:%v  skipped:%v  failed:%v  checkpoint:%v",
		summary.Found,
		summary.Relayed,
		summary.Skipped,
		summary.Failed,
		checkpoint.Format(summary.Next))

	return nil
}
