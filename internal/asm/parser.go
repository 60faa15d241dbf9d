// parser.go implements the recursive-descent parser of §4.3: grammar, pseudo-
// instruction expansion, and the label/constant forward-reference asymmetry.
package asm

import (
	"github.com/nicholasprowse/HADLoC/internal/diag"
	"github.com/nicholasprowse/HADLoC/internal/text"
	"github.com/nicholasprowse/HADLoC/internal/token"
)

// Parser turns a token stream into a SymbolTable and an InstructionList. Use
// Parse rather than constructing a Parser directly.
type Parser struct {
	file   string
	tokens []token.Token
	pos    int

	symbols  *SymbolTable
	usage    *UsageSets
	instrs   []Instruction
	warnings []diag.Warning
}

// Parse runs the parser to completion. The returned InstructionList is pre-seeded
// with two Fixed(nop) and terminated with Fixed(hlt); it still contains unresolved
// LdbRef/LduRef placeholders for forward label references.
func Parse(file string, tokens []token.Token) (*SymbolTable, []Instruction, []diag.Warning, error) {
	p := &Parser{
		file:    file,
		tokens:  tokens,
		symbols: NewSymbolTable(),
		usage:   NewUsageSets(),
	}

	p.instrs = append(p.instrs,
		Fixed{Opcode: fixedOpcodes["nop"], Pos: text.Empty()},
		Fixed{Opcode: fixedOpcodes["nop"], Pos: text.Empty()},
	)

	for !p.atEnd() {
		if err := p.parseLine(); err != nil {
			return nil, nil, nil, err
		}
	}

	if last, ok := p.instrs[len(p.instrs)-1].(Fixed); !ok || last.Opcode != fixedOpcodes["hlt"] {
		p.instrs = append(p.instrs, Fixed{Opcode: fixedOpcodes["hlt"], Pos: text.Empty()})
	}

	if err := p.checkUndefined(); err != nil {
		return nil, nil, nil, err
	}

	p.collectUnusedWarnings()

	return p.symbols, p.instrs, p.warnings, nil
}

func (p *Parser) checkUndefined() error {
	for name, pos := range p.usage.Labels() {
		if !p.symbols.Defined(name) {
			return diag.NameError(p.file, pos, "undefined name: "+name)
		}
	}

	return nil
}

func (p *Parser) collectUnusedWarnings() {
	for name := range p.symbols.labels {
		if !p.usage.UsedLabel(name) {
			pos, _ := p.symbols.DefinedAt(name)
			p.warnings = append(p.warnings, diag.Warning{Kind: diag.UnusedLabel, Name: name, Pos: pos})
		}
	}

	for name := range p.symbols.constants {
		if !p.usage.UsedConstant(name) {
			pos, _ := p.symbols.DefinedAt(name)
			p.warnings = append(p.warnings, diag.Warning{Kind: diag.UnusedConstant, Name: name, Pos: pos})
		}
	}
}

// --- token cursor -----------------------------------------------------------

func (p *Parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++

	return t
}

func (p *Parser) atKeyword(kw string) bool {
	return !p.atEnd() && p.current().Kind == token.Keyword && p.current().Lexeme() == kw
}

func (p *Parser) atLabelStart() bool {
	return !p.atEnd() && p.current().Kind == token.Identifier &&
		p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Kind == token.Symbol && p.tokens[p.pos+1].Lexeme() == ":"
}

func (p *Parser) expectLineEnd() error {
	if p.atEnd() {
		return nil
	}

	if p.current().Kind == token.InstructionEnd {
		p.advance()
		return nil
	}

	return diag.SyntaxError(p.file, p.current().Text, "expected end of instruction")
}

func (p *Parser) expectSymbol(sym string) (text.Text, error) {
	if p.atEnd() || p.current().Kind != token.Symbol || p.current().Lexeme() != sym {
		pos := p.eofOrCurrent()
		return text.Empty(), diag.SyntaxError(p.file, pos, "expected '"+sym+"'")
	}

	return p.advance().Text, nil
}

func (p *Parser) expectRegister() (Register, text.Text, error) {
	if p.atEnd() || p.current().Kind != token.Register {
		pos := p.eofOrCurrent()
		return 0, text.Empty(), diag.SyntaxError(p.file, pos, "expected register")
	}

	tok := p.advance()

	return registerNames[tok.Lexeme()], tok.Text, nil
}

// eofOrCurrent returns the current token's span, or the span of the last
// consumed token if we've run out of input (so EOF errors still point somewhere).
func (p *Parser) eofOrCurrent() text.Text {
	if !p.atEnd() {
		return p.current().Text
	}

	if p.pos > 0 {
		return p.tokens[p.pos-1].Text
	}

	return text.Empty()
}

func (p *Parser) emit(instr Instruction) {
	p.instrs = append(p.instrs, instr)
}

// --- grammar ------------------------------------------------------------

func (p *Parser) parseLine() error {
	if p.atKeyword("define") {
		if err := p.parseDefinition(); err != nil {
			return err
		}

		return p.expectLineEnd()
	}

	hadLabel := false

	if p.atLabelStart() {
		if err := p.parseLabel(); err != nil {
			return err
		}

		hadLabel = true
	}

	switch {
	case !p.atEnd() && p.current().Kind == token.Keyword:
		if err := p.parseInstruction(); err != nil {
			return err
		}
	case !p.atEnd() && p.current().Kind == token.InstructionEnd:
		// label with no instruction this line.
	case p.atEnd():
		// label on the last line with no instruction.
	case hadLabel:
		return diag.SyntaxError(p.file, p.current().Text, "expected instruction")
	default:
		return diag.SyntaxError(p.file, p.current().Text, "unexpected token")
	}

	return p.expectLineEnd()
}

func (p *Parser) parseLabel() error {
	tok := p.advance() // identifier
	p.advance()         // ':'

	name := tok.Lexeme()
	if p.symbols.Defined(name) {
		return diag.NameError(p.file, tok.Text, "name already defined: "+name)
	}

	p.symbols.DefineLabel(name, len(p.instrs), tok.Text)

	return nil
}

func (p *Parser) parseDefinition() error {
	p.advance() // 'define'

	if p.atEnd() || p.current().Kind != token.Identifier {
		return diag.SyntaxError(p.file, p.eofOrCurrent(), "expected name after define")
	}

	nameTok := p.advance()
	name := nameTok.Lexeme()

	if p.symbols.Defined(name) {
		return diag.NameError(p.file, nameTok.Text, "name already defined: "+name)
	}

	value, _, err := p.parseOrExpr()
	if err != nil {
		return err
	}

	p.symbols.DefineConstant(name, value, nameTok.Text)

	return nil
}

func (p *Parser) parseInstruction() error {
	tok := p.advance()
	kw := tok.Lexeme()

	switch kw {
	case "ldb", "ldu":
		return p.parseLoad(kw)
	case "lda":
		return p.parseLda()
	case "mov":
		return p.parseMove()
	case "opd":
		return p.parseOpInstr(true)
	case "opi":
		return p.parseOpInstr(false)
	}

	if op, ok := aluKeywords[kw]; ok {
		return p.parseArith(op, tok.Text)
	}

	if opcode, ok := jumpOpcodes[kw]; ok {
		return p.parseJump(opcode, tok.Text)
	}

	if opcode, ok := fixedOpcodes[kw]; ok {
		p.emit(Fixed{Opcode: opcode, Pos: tok.Text})
		return nil
	}

	return diag.SyntaxError(p.file, tok.Text, "unrecognized instruction: "+kw)
}

func (p *Parser) parseMove() error {
	src, _, err := p.expectRegister()
	if err != nil {
		return err
	}

	dst, pos, err := p.expectRegister()
	if err != nil {
		return err
	}

	p.emit(Mov{Dst: dst, Src: src, Pos: pos})

	return nil
}

func (p *Parser) parseOpInstr(isOpd bool) error {
	reg, pos, err := p.expectRegister()
	if err != nil {
		return err
	}

	if isOpd {
		p.emit(Opd{Reg: reg, Pos: pos})
	} else {
		p.emit(Opi{Reg: reg, Pos: pos})
	}

	return nil
}

func (p *Parser) parseArith(op ALUOp, pos text.Text) error {
	dst, _, err := p.expectRegister()
	if err != nil {
		return err
	}

	arg1, arg1Pos, err := p.expectRegister()
	if err != nil {
		return err
	}

	if op.unary() {
		p.emit(Arith{Op: op, Dst: dst, Arg1: arg1, Pos: pos})
		return nil
	}

	arg2, _, err := p.expectRegister()
	if err != nil {
		return err
	}

	_ = arg1Pos

	p.emit(Arith{Op: op, Dst: dst, Arg1: arg1, Arg2: arg2, HasArg2: true, Pos: pos})

	return nil
}

// parseLoad parses the operand of a standalone ldb/ldu instruction and expands it
// per §4.3.
func (p *Parser) parseLoad(kind string) error {
	expr, err := p.parseConstExpr()
	if err != nil {
		return err
	}

	if expr.isRef {
		p.emitRef(kind, expr.label, expr.pos)
		return nil
	}

	return p.expandLoad(kind, expr.value, expr.pos)
}

// parseLda parses `lda ConstExpr` and expands it to ldu; mov L H; ldb, as §4.3
// specifies.
func (p *Parser) parseLda() error {
	expr, err := p.parseConstExpr()
	if err != nil {
		return err
	}

	if expr.isRef {
		p.emitRef("ldu", expr.label, expr.pos)
		p.emit(Mov{Dst: RegH, Src: RegL, Pos: expr.pos})
		p.emitRef("ldb", expr.label, expr.pos)

		return nil
	}

	if err := p.expandLoad("ldu", expr.value, expr.pos); err != nil {
		return err
	}

	p.emit(Mov{Dst: RegH, Src: RegL, Pos: expr.pos})

	return p.expandLoad("ldb", expr.value, expr.pos)
}

// parseJump parses `jxx ConstExpr`, expanding the target address exactly like
// lda (ldu; mov L H; ldb), followed by the bare jump opcode itself.
func (p *Parser) parseJump(opcode byte, opPos text.Text) error {
	expr, err := p.parseConstExpr()
	if err != nil {
		return err
	}

	if expr.isRef {
		p.emitRef("ldu", expr.label, expr.pos)
		p.emit(Mov{Dst: RegH, Src: RegL, Pos: expr.pos})
		p.emitRef("ldb", expr.label, expr.pos)
		p.emit(Fixed{Opcode: opcode, Pos: opPos})

		return nil
	}

	if err := p.expandLoad("ldu", expr.value, expr.pos); err != nil {
		return err
	}

	p.emit(Mov{Dst: RegH, Src: RegL, Pos: expr.pos})

	if err := p.expandLoad("ldb", expr.value, expr.pos); err != nil {
		return err
	}

	p.emit(Fixed{Opcode: opcode, Pos: opPos})

	return nil
}

func (p *Parser) emitRef(kind, label string, pos text.Text) {
	if kind == "ldb" {
		p.emit(LdbRef{Label: label, Pos: pos})
	} else {
		p.emit(LduRef{Label: label, Pos: pos})
	}
}

// expandLoad implements the ldb/ldu pseudo-instruction expansion rule: one Ldb/Ldu
// instruction if bit 7 of the relevant byte is clear, or the complemented byte
// followed by `not L L` otherwise. The label resolver re-runs this same rule once a
// LdbRef/LduRef's value becomes known -- see resolve.go.
func (p *Parser) expandLoad(kind string, value int32, pos text.Text) error {
	for _, instr := range expandLoadBytes(kind, value, pos) {
		p.emit(instr)
	}

	return nil
}

// --- constant-expression grammar -----------------------------------------

// exprResult is either a fully evaluated constant (isRef == false) or a deferred
// label reference (isRef == true), per the ConstExpr production.
type exprResult struct {
	isRef bool
	label string
	value int32
	pos   text.Text
}

func (p *Parser) parseConstExpr() (exprResult, error) {
	if !p.atEnd() && p.current().Kind == token.Identifier {
		name := p.current().Lexeme()
		if _, ok := p.symbols.Constant(name); !ok {
			pos := p.current().Text
			p.usage.UseLabel(name, pos)
			p.advance()

			return exprResult{isRef: true, label: name, pos: pos}, nil
		}
	}

	value, pos, err := p.parseOrExpr()
	if err != nil {
		return exprResult{}, err
	}

	return exprResult{value: value, pos: pos}, nil
}

func (p *Parser) parseOrExpr() (int32, text.Text, error) {
	value, pos, err := p.parseAndExpr()
	if err != nil {
		return 0, pos, err
	}

	for !p.atEnd() && p.current().Kind == token.Symbol && p.current().Lexeme() == "|" {
		p.advance()

		right, _, err := p.parseAndExpr()
		if err != nil {
			return 0, pos, err
		}

		value |= right
	}

	return value, pos, nil
}

func (p *Parser) parseAndExpr() (int32, text.Text, error) {
	value, pos, err := p.parseAddExpr()
	if err != nil {
		return 0, pos, err
	}

	for !p.atEnd() && p.current().Kind == token.Symbol && p.current().Lexeme() == "&" {
		p.advance()

		right, _, err := p.parseAddExpr()
		if err != nil {
			return 0, pos, err
		}

		value &= right
	}

	return value, pos, nil
}

func (p *Parser) parseAddExpr() (int32, text.Text, error) {
	value, pos, err := p.parseUnaryExpr()
	if err != nil {
		return 0, pos, err
	}

	for !p.atEnd() && p.current().Kind == token.Symbol && (p.current().Lexeme() == "+" || p.current().Lexeme() == "-") {
		op := p.advance().Lexeme()

		right, _, err := p.parseUnaryExpr()
		if err != nil {
			return 0, pos, err
		}

		if op == "+" {
			value += right
		} else {
			value -= right
		}
	}

	return value, pos, nil
}

func (p *Parser) parseUnaryExpr() (int32, text.Text, error) {
	if !p.atEnd() && p.current().Kind == token.Symbol && (p.current().Lexeme() == "-" || p.current().Lexeme() == "!") {
		op := p.advance()

		value, pos, err := p.parseUnaryExpr()
		if err != nil {
			return 0, pos, err
		}

		if op.Lexeme() == "-" {
			value = -value
		} else {
			value = ^value
		}

		return value, op.Text, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (int32, text.Text, error) {
	if p.atEnd() {
		pos := p.eofOrCurrent()
		return 0, pos, diag.SyntaxError(p.file, pos, "expected expression")
	}

	tok := p.current()

	switch {
	case tok.Kind == token.Symbol && tok.Lexeme() == "(":
		p.advance()

		value, pos, err := p.parseOrExpr()
		if err != nil {
			return 0, pos, err
		}

		if _, err := p.expectSymbol(")"); err != nil {
			return 0, pos, err
		}

		return value, pos, nil

	case tok.Kind == token.Integer:
		p.advance()

		if tok.Value < -32768 || tok.Value >= 65536 {
			return 0, tok.Text, diag.ValueError(p.file, tok.Text, "integer literal out of range")
		}

		return tok.Value, tok.Text, nil

	case tok.Kind == token.Identifier:
		p.advance()

		value, ok := p.symbols.Constant(tok.Lexeme())
		if !ok {
			return 0, tok.Text, diag.NameError(p.file, tok.Text, "undefined constant: "+tok.Lexeme())
		}

		p.usage.UseConstant(tok.Lexeme(), tok.Text)

		return value, tok.Text, nil

	default:
		return 0, tok.Text, diag.SyntaxError(p.file, tok.Text, "expected expression")
	}
}
