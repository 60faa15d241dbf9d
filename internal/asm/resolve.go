// resolve.go implements the label resolver of §4.4: a single reverse walk that
// replaces every LdbRef/LduRef placeholder with its final expansion once the
// label's instruction index is known, fixing up downstream label addresses as it
// goes.
package asm

import (
	"github.com/nicholasprowse/HADLoC/internal/diag"
	"github.com/nicholasprowse/HADLoC/internal/text"
)

// Resolve walks instrs in reverse, replacing LdbRef/LduRef placeholders in place.
// On return, no placeholder variants remain and every label in symbols points at
// the index of the instruction immediately following it.
func Resolve(file string, symbols *SymbolTable, instrs []Instruction) ([]Instruction, error) {
	for i := len(instrs) - 1; i >= 0; i-- {
		var (
			kind  string
			label string
			pos   text.Text
		)

		switch ins := instrs[i].(type) {
		case LdbRef:
			kind, label, pos = "ldb", ins.Label, ins.Pos
		case LduRef:
			kind, label, pos = "ldu", ins.Label, ins.Pos
		default:
			continue
		}

		idx, ok := symbols.Label(label)
		if !ok {
			return nil, diag.NameError(file, pos, "undefined label: "+label)
		}

		expanded := expandLoadBytes(kind, int32(idx), pos)
		delta := len(expanded) - 1

		instrs = spliceInstructions(instrs, i, expanded)

		if delta != 0 {
			for name, addr := range symbols.Labels() {
				if addr > i {
					symbols.SetLabel(name, addr+delta)
				}
			}
		}
	}

	return instrs, nil
}

// spliceInstructions replaces instrs[i] with the (possibly multi-element) slice
// replacement, without disturbing anything before i.
func spliceInstructions(instrs []Instruction, i int, replacement []Instruction) []Instruction {
	out := make([]Instruction, 0, len(instrs)-1+len(replacement))
	out = append(out, instrs[:i]...)
	out = append(out, replacement...)
	out = append(out, instrs[i+1:]...)

	return out
}
