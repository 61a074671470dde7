package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	lib "github.com/uhppoted/uhppoted-lib/command"

	"github.com/sensorlog/dht-sheets/commands"
	"github.com/sensorlog/dht-sheets/log"
)

var cli = []lib.Command{
	&commands.RunCmd,
	&commands.AuthoriseCmd,
	&commands.CheckCmd,
	&commands.GetCmd,
	&commands.PutCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, &commands.RunCmd)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := lib.Parse(cli, &commands.RunCmd, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = cmd.Execute(ctx, &options); err != nil {
		cancel()
		log.Fatalf("%v", err)
	}
}
