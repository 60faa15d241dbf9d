package encoding_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nicholasprowse/HADLoC/internal/encoding"
)

func TestRender_binIsRawPassthrough(t *testing.T) {
	code := []byte{0x85, 0x21, 0x00}

	bin, _, _ := encoding.Render(code)

	if !bytes.Equal(bin, code) {
		t.Errorf("bin: got %v, want %v", bin, code)
	}
}

func TestRender_hexHeaderAppearsAtStartAndEveryPage(t *testing.T) {
	code := make([]byte, 513)
	for i := range code {
		code[i] = byte(i)
	}

	_, hexText, _ := encoding.Render(code)

	got := strings.Count(string(hexText), "_0 ")
	if got != 2 {
		t.Errorf("header column markers: got %d occurrences of \"_0 \", want 2 (one per page)", got)
	}
}

func TestRender_hexHasNoHeaderMidPage(t *testing.T) {
	code := make([]byte, 32)
	for i := range code {
		code[i] = byte(i)
	}

	_, hexText, _ := encoding.Render(code)

	lines := strings.Split(strings.TrimRight(string(hexText), "\n"), "\n")

	// one header (3 lines) + 2 data rows (32 bytes / 16 columns)
	if len(lines) != 5 {
		t.Fatalf("line count: got %d, want 5 (header x3 + 2 data rows)", len(lines))
	}

	if !strings.Contains(lines[3], "000_") {
		t.Errorf("first data row missing address prefix: %q", lines[3])
	}

	if !strings.Contains(lines[4], "001_") {
		t.Errorf("second data row missing address prefix: %q", lines[4])
	}
}

func TestRender_hexRowGroupsColumnsEightAndEight(t *testing.T) {
	code := make([]byte, 16)
	for i := range code {
		code[i] = 0xAB
	}

	_, hexText, _ := encoding.Render(code)

	lines := strings.Split(strings.TrimRight(string(hexText), "\n"), "\n")
	row := lines[len(lines)-1]

	if !strings.Contains(row, "AB AB AB AB AB AB AB AB  AB AB AB AB AB AB AB AB") {
		t.Errorf("expected an extra space after the 8th column, got %q", row)
	}
}

func TestRender_binTextIsOneByteOfBinaryPerLine(t *testing.T) {
	code := []byte{0x00, 0xFF, 0x85}

	_, _, binText := encoding.Render(code)

	want := "00000000\n11111111\n10000101\n"
	if string(binText) != want {
		t.Errorf("binText: got %q, want %q", string(binText), want)
	}
}

func TestRender_binTextHasNoBoxDrawing(t *testing.T) {
	_, _, binText := encoding.Render([]byte{0x01, 0x02})

	if strings.ContainsAny(string(binText), "━╋┳┃") {
		t.Error("binText should not contain any box-drawing characters")
	}
}
