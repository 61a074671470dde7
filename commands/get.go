package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var GetCmd = Get{
	command: command{
		env: ".env",
	},

	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the logged readings from a Google Sheets worksheet and stores them to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "[--spreadsheet <name>] --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the logged readings in the first worksheet to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug get --spreadsheet DHT22 --file \"readings.tsv\"\n", APP)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args)
	if err != nil {
		return err
	}

	if isBlank(cmd.file) {
		return fmt.Errorf("--file is a required option")
	}

	worksheet, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	response, err := worksheet.Get(ctx, "A:C")
	if err != nil {
		return err
	}

	if len(response.Values) == 0 {
		return fmt.Errorf("no readings in worksheet '%v'", worksheet.Title())
	}

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".readings")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	count, err := sheetToTSV(tmp, response)
	if err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	tmp.Close()

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved %v readings to file %s", count, cmd.file)

	return nil
}
