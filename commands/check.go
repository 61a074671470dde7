package commands

import (
	"flag"
	"fmt"
)

// CheckCmd opens the spreadsheet and prints cell A1 of the first worksheet.
var CheckCmd = Check{
	command: command{
		env: ".env",
	},
}

type Check struct {
	command
}

func (cmd *Check) Name() string {
	return "check"
}

func (cmd *Check) Description() string {
	return "Verifies the credentials and spreadsheet by retrieving cell A1 of the first worksheet"
}

func (cmd *Check) Usage() string {
	return "[--spreadsheet <name>]"
}

func (cmd *Check) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] check [options]\n", APP)
	fmt.Println()
	fmt.Println("  Logs in, opens the spreadsheet and prints cell A1 of the first worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s check --spreadsheet DHT22\n", APP)
	fmt.Println()
}

func (cmd *Check) FlagSet() *flag.FlagSet {
	return cmd.flagset("check")
}

func (cmd *Check) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args)
	if err != nil {
		return err
	}

	worksheet, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	response, err := worksheet.Get(ctx, "A1")
	if err != nil {
		return err
	}

	fmt.Printf("%v!A1: %v\n", worksheet.Title(), response.Values)

	return nil
}
