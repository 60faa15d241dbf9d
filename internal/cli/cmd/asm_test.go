package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nicholasprowse/HADLoC/internal/cli/cmd"
	"github.com/nicholasprowse/HADLoC/internal/log"
)

func TestAsm_writesThreeSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.hdc")

	if err := os.WriteFile(src, []byte("ldb 5\nmov L X\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	a := cmd.Asm()
	a.FlagSet().Parse([]string{src})
	a.Run(context.Background(), []string{src}, &out, log.NewFormattedLogger(&out))

	for _, suffix := range []string{".bin", "_hex.txt", "_bin.txt"} {
		path := filepath.Join(dir, "prog"+suffix)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %s", path, err)
		}
	}
}

func TestRun_executesAssembledImageToHalt(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.hdc")
	binPath := filepath.Join(dir, "prog.bin")

	if err := os.WriteFile(src, []byte("ldb 5\nmov L X\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var asmOut bytes.Buffer

	a := cmd.Asm()
	a.Run(context.Background(), []string{src}, &asmOut, log.NewFormattedLogger(&asmOut))

	if _, err := os.Stat(binPath); err != nil {
		t.Fatalf("expected %s from asm step: %s", binPath, err)
	}

	var runOut bytes.Buffer

	r := cmd.Run()
	r.Run(context.Background(), []string{binPath}, &runOut, log.NewFormattedLogger(&runOut))

	if runOut.Len() == 0 {
		t.Error("expected run to print final machine state")
	}
}
