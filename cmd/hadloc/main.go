// hadloc is the assembler and emulator for HADLoC, an 8-bit didactic computer.
package main

import (
	"context"
	"os"

	"github.com/nicholasprowse/HADLoC/internal/cli"
	"github.com/nicholasprowse/HADLoC/internal/cli/cmd"
)

func main() {
	asmCmd := cmd.Asm()
	runCmd := cmd.Run()
	commands := []cli.Command{asmCmd, runCmd}

	commander := cli.New(context.Background()).
		WithLogger(os.Stderr).
		WithCommands(commands).
		WithHelp(cmd.Help(commands))

	os.Exit(commander.Execute(os.Args[1:]))
}
