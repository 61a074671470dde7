package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/sensorlog/dht-sheets/config"
	"github.com/sensorlog/dht-sheets/gsheets"
	"github.com/sensorlog/dht-sheets/log"
)

const APP = "dht-sheets"

type Options struct {
	Debug bool
}

// command holds the options shared by all the spreadsheet commands. Empty
// fields fall back to the .env file, DHT_SHEETS_* environment and compiled-in
// defaults, in that order.
type command struct {
	env            string
	credentials    string
	authorizedUser string
	spreadsheet    string
	debug          bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)
	defaults := config.Default()

	flagset.StringVar(&c.env, "env", c.env, "Optional .env file with DHT_SHEETS_* settings")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, fmt.Sprintf("Application credentials file. Defaults to %v", defaults.Credentials))
	flagset.StringVar(&c.authorizedUser, "authorized-user", c.authorizedUser, fmt.Sprintf("Authorised session file. Defaults to %v", defaults.AuthorizedUser))
	flagset.StringVar(&c.spreadsheet, "spreadsheet", c.spreadsheet, fmt.Sprintf("Spreadsheet name or URL. Defaults to %v", defaults.Spreadsheet))

	return flagset
}

func (c *command) configure(args []any) (context.Context, config.Config, error) {
	ctx := context.Background()

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			c.debug = v.Debug
		}
	}

	log.SetDebug(c.debug)

	cfg, err := config.Load(c.env)
	if err != nil {
		return ctx, cfg, err
	}

	if s := strings.TrimSpace(c.credentials); s != "" {
		cfg.Credentials = s
	}

	if s := strings.TrimSpace(c.authorizedUser); s != "" {
		cfg.AuthorizedUser = s
	}

	if s := strings.TrimSpace(c.spreadsheet); s != "" {
		cfg.Spreadsheet = s
	}

	return ctx, cfg, nil
}

func (c *command) open(ctx context.Context, cfg config.Config) (*gsheets.Worksheet, error) {
	client := gsheets.NewClient(cfg.Credentials, cfg.AuthorizedUser)

	worksheet, err := client.OpenWorksheet(ctx, cfg.Spreadsheet)
	if err != nil {
		return nil, fmt.Errorf("unable to open spreadsheet '%v' (%w)", cfg.Spreadsheet, err)
	}

	debugf("Spreadsheet - ID:%s  worksheet:%s", worksheet.SpreadsheetID(), worksheet.Title())

	return worksheet, nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-16s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-16s %s\n", f.Name, f.Usage)
		})
	}
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}
