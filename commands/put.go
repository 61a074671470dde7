package commands

import (
	"flag"
	"fmt"
	"os"
)

var PutCmd = Put{
	command: command{
		env: ".env",
	},
}

type Put struct {
	command
	file string
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file with timestamp, temperature and humidity columns")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args)
	if err != nil {
		return err
	}

	if isBlank(cmd.file) {
		return fmt.Errorf("--file is a required option")
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	rows, err := tsvToRows(f)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%w)", err)
	}

	worksheet, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	if err := worksheet.AppendRows(ctx, rows); err != nil {
		return fmt.Errorf("error appending readings to '%v' (%w)", worksheet.Title(), err)
	}

	infof("Appended %v readings from %v to %v", len(rows), cmd.file, cfg.Spreadsheet)

	return nil
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Appends the readings in a TSV file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "[--spreadsheet <name>] --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [options] put [--spreadsheet <name>] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Appends the readings in a TSV file to the first worksheet, e.g. to backfill readings recorded offline")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println()
	fmt.Printf("    %s --debug put --spreadsheet DHT22 --file \"readings.tsv\"\n", APP)
	fmt.Println()
}
