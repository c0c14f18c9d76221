package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mjsigg/tkd-project-poller/config"
	"github.com/mjsigg/tkd-project-poller/gdrive"
)

var GetCmd = Get{
	url:  "",
	file: time.Now().Format("2006-01-02T150405.csv"),
}

// Get exports a single spreadsheet as CSV to a local file, using the same credentials and
// export path as the poller.
type Get struct {
	url   string
	file  string
	debug bool
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Exports a Google Sheets spreadsheet as CSV to a local file"
}

func (cmd *Get) Usage() string {
	return "--url <url> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get --url <URL> [--file <file>]\n", APP)
	fmt.Println()
	fmt.Println("  Exports a spreadsheet as CSV exactly as it would be relayed by the poller")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`+"\n", APP)
	fmt.Println(`                           --file "example.csv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("get", flag.ExitOnError)

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL or ID")
	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.csv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := getOptions(args)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	id, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error (%w)", err)
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  file:%s", id, cmd.file)
	}

	ctx := context.Background()

	service, err := gdrive.NewService(ctx, cfg.Credentials, cfg.Workdir)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	csv, err := gdrive.NewFolder(service, cfg.FolderID, cfg.SharedDrives).Export(ctx, id)
	if err != nil {
		return err
	}

	if err := write(cmd.file, csv); err != nil {
		return err
	}

	infof("Exported spreadsheet %s to file %s", id, cmd.file)

	return nil
}

func write(file, content string) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".export")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("error creating CSV file (%w)", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
