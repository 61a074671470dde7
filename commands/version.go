package commands

import (
	"flag"
	"fmt"
)

const VERSION = "v0.1.0"

var VersionCmd = Version{}

// Version prints the build version of the logger, e.g. for checking which
// release is installed on a Pi before filing an issue.
type Version struct {
}

func (c *Version) Name() string {
	return "version"
}

func (c *Version) Description() string {
	return "Prints the dht-sheets release"
}

func (c *Version) Usage() string {
	return ""
}

func (c *Version) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s version\n", APP)
	fmt.Println()
	fmt.Printf("  Prints the %v release tag (%v) and exits.\n", APP, VERSION)
	fmt.Println()
}

func (c *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (c *Version) Execute(...any) error {
	fmt.Println(VERSION)

	return nil
}
