package commands

import (
	"flag"
	"fmt"
)

const VERSION = "v0.1.0"

var VersionCmd = Version{}

// Version prints the poller release tag.
type Version struct {
}

func (c *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (c *Version) Execute(args ...any) error {
	fmt.Printf("%s\n", VERSION)

	return nil
}

func (c *Version) Name() string {
	return "version"
}

func (c *Version) Description() string {
	return "Prints the poller release tag"
}

func (c *Version) Usage() string {
	return ""
}

func (c *Version) Help() {
	fmt.Printf("Usage: %s version\n", APP)
	fmt.Println()
	fmt.Printf("  Prints the %s release tag (e.g. %s) and exits. Report it with any poller\n", APP, VERSION)
	fmt.Println("  issue, together with the MODE and CHECKPOINT_BACKEND in use.")
	fmt.Println()
}
