package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/nicholasprowse/HADLoC/internal/cli"
	"github.com/nicholasprowse/HADLoC/internal/log"
)

// Help lists the available subcommands. It is also the fallback Commander
// runs when given an unrecognized or missing command name.
func Help(all []cli.Command) cli.Command {
	return &help{all: all}
}

type help struct {
	all []cli.Command
}

func (help) Help() string { return "show usage" }

func (h *help) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("help", flag.ContinueOnError)
}

func (h *help) Run(_ context.Context, _ []string, out io.Writer, _ *log.Logger) {
	fmt.Fprintln(out, "usage: hadloc <command> [arguments]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")

	for _, cmd := range h.all {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.FlagSet().Name(), cmd.Help())
	}
}
