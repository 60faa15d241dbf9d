package asm

import "github.com/nicholasprowse/HADLoC/internal/text"

// SymbolTable holds the two disjoint symbol namespaces: labels, which resolve to
// an instruction index and may be referenced before they're defined, and
// constants, which resolve to a value and must be defined before use.
type SymbolTable struct {
	labels    map[string]int
	constants map[string]int32

	// defPos records where each name was first defined, for duplicate-definition
	// diagnostics.
	defPos map[string]text.Text
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		labels:    make(map[string]int),
		constants: make(map[string]int32),
		defPos:    make(map[string]text.Text),
	}
}

// Defined reports whether name is already a label or a constant.
func (t *SymbolTable) Defined(name string) bool {
	_, l := t.labels[name]
	_, c := t.constants[name]

	return l || c
}

// DefinedAt returns the span where name was defined, if it is defined.
func (t *SymbolTable) DefinedAt(name string) (text.Text, bool) {
	pos, ok := t.defPos[name]
	return pos, ok
}

// DefineLabel records name as a label at the given instruction index. The caller
// must check Defined first; DefineLabel does not itself enforce uniqueness.
func (t *SymbolTable) DefineLabel(name string, index int, pos text.Text) {
	t.labels[name] = index
	t.defPos[name] = pos
}

// DefineConstant records name as a constant with the given value.
func (t *SymbolTable) DefineConstant(name string, value int32, pos text.Text) {
	t.constants[name] = value
	t.defPos[name] = pos
}

// Label returns the instruction index of a label.
func (t *SymbolTable) Label(name string) (int, bool) {
	idx, ok := t.labels[name]
	return idx, ok
}

// Constant returns the value of a constant.
func (t *SymbolTable) Constant(name string) (int32, bool) {
	v, ok := t.constants[name]
	return v, ok
}

// SetLabel updates a label's resolved instruction index; used by the label
// resolver when an earlier edit shifts downstream addresses.
func (t *SymbolTable) SetLabel(name string, index int) {
	t.labels[name] = index
}

// Labels returns every defined label name.
func (t *SymbolTable) Labels() map[string]int {
	return t.labels
}

// UsageSets tracks which label and constant names were actually referenced, so
// the parser can report unused-definition warnings once parsing completes.
type UsageSets struct {
	labels    map[string]text.Text
	constants map[string]text.Text
}

// NewUsageSets returns an empty pair of usage sets.
func NewUsageSets() *UsageSets {
	return &UsageSets{
		labels:    make(map[string]text.Text),
		constants: make(map[string]text.Text),
	}
}

func (u *UsageSets) UseLabel(name string, pos text.Text) {
	u.labels[name] = pos
}

func (u *UsageSets) UseConstant(name string, pos text.Text) {
	u.constants[name] = pos
}

func (u *UsageSets) UsedLabel(name string) bool {
	_, ok := u.labels[name]
	return ok
}

func (u *UsageSets) UsedConstant(name string) bool {
	_, ok := u.constants[name]
	return ok
}

// Labels returns the set of label names that were referenced.
func (u *UsageSets) Labels() map[string]text.Text {
	return u.labels
}
