package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	lib "github.com/uhppoted/uhppoted-lib/command"

	"github.com/mjsigg/tkd-project-poller/commands"
)

var cli = []lib.Command{
	&commands.VersionCmd,
	&commands.RunCmd,
	&commands.WatchCmd,
	&commands.ServeCmd,
	&commands.GetCmd,
	&commands.AuthoriseCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := lib.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
