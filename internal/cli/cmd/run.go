package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nicholasprowse/HADLoC/internal/cli"
	"github.com/nicholasprowse/HADLoC/internal/log"
	"github.com/nicholasprowse/HADLoC/internal/machine"
)

// Run loads a .bin image into a CPU and executes it headlessly to completion,
// printing the final register and display state.
func Run() cli.Command {
	return new(runCmd)
}

type runCmd struct {
	debug bool
}

func (runCmd) Help() string { return "run a .bin image to completion" }

func (r *runCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	fs.BoolVar(&r.debug, "debug", false, "enable debug logging")

	return fs
}

func (r *runCmd) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) {
	if r.debug {
		log.LogLevel.Set(slog.LevelDebug)
	}

	if len(args) != 1 {
		fmt.Fprintln(out, "usage: hadloc run <file.bin>")
		return
	}

	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	cpu := machine.New(rom)
	cpu.WithLogger(logger)

	if err := cpu.Run(ctx); err != nil {
		fmt.Fprintln(out, err)
		return
	}

	fmt.Fprintln(out, cpu.String())
	fmt.Fprintln(out, cpu.Display.String())
}
