// Package cli contains the hadloc command-line interface: a Commander
// dispatching to subcommands, each a flag.FlagSet plus a Run method.
package cli

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/nicholasprowse/HADLoC/internal/log"
)

type Flag = flag.Flag
type FlagSet = flag.FlagSet

func New(ctx context.Context) *Commander {
	return &Commander{
		ctx: ctx,
	}
}

// Commander dispatches a command line to one of a fixed set of Commands.
type Commander struct {
	ctx context.Context
	log *log.Logger

	help     Command
	commands []Command
}

// Execute parses args and runs the matching command, returning a process exit
// code. An unrecognized or missing command name runs the help command.
func (cli *Commander) Execute(args []string) int {
	if len(args) == 0 {
		cli.help.Run(cli.ctx, nil, os.Stdout, cli.log)
		return 1
	}

	found := cli.help
	for _, cmd := range cli.commands {
		if args[0] == cmd.FlagSet().Name() {
			found = cmd
		}
	}

	fs := found.FlagSet()

	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)

	return 0
}

func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

func (cli *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(out)
	cli.log = logger

	slog.SetDefault(logger)

	return cli
}

// Command is a single named subcommand.
type Command interface {
	FlagSet() *flag.FlagSet
	Help() string
	Run(context.Context, []string, io.Writer, *log.Logger)
}
