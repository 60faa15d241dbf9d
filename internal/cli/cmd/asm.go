package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nicholasprowse/HADLoC/internal/asm"
	"github.com/nicholasprowse/HADLoC/internal/cli"
	"github.com/nicholasprowse/HADLoC/internal/encoding"
	"github.com/nicholasprowse/HADLoC/internal/log"
	"github.com/nicholasprowse/HADLoC/internal/text"
)

// Asm assembles a .hdc source file into its three sibling object files.
func Asm() cli.Command {
	return new(asmCmd)
}

type asmCmd struct {
	debug bool
}

func (asmCmd) Help() string { return "assemble a .hdc file into .bin/_hex.txt/_bin.txt" }

func (a *asmCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)

	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")

	return fs
}

func (a *asmCmd) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) {
	if a.debug {
		log.LogLevel.Set(slog.LevelDebug)
	}

	if len(args) != 1 {
		fmt.Fprintln(out, "usage: hadloc asm <file.hdc>")
		return
	}

	file := args[0]

	raw, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	src := text.New(string(raw), 0)

	result, err := asm.Assemble(file, src)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(out, w.String())
	}

	bin, hexText, binText := encoding.Render(result.Code)

	base := strings.TrimSuffix(file, ".hdc")

	paths := []string{base + ".bin", base + "_hex.txt", base + "_bin.txt"}
	contents := [][]byte{bin, hexText, binText}

	for i, path := range paths {
		if err := os.WriteFile(path, contents[i], 0o644); err != nil {
			fmt.Fprintln(out, err)
			return
		}

		fmt.Fprintln(out, path)
	}

	logger.Info("assembled", log.String("file", file), log.String("out", paths[0]))
}
