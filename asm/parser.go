package asm

import (
	"github.com/pkg/errors"

	"pocol/config"
	"pocol/isa"
	"pocol/symtab"
)

// ErrAssemblyFailed is returned by Assemble when one or more diagnostics
// were reported; the caller should consult Context.Diagnostics for
// details rather than inspect this sentinel directly.
var ErrAssemblyFailed = errors.New("assembly failed")

// Context is a per-file assembler context: the source, symbol table, and
// accumulated diagnostics — nothing here is package state. Each pass
// creates its own lexer and virtual program counter (see runPass).
type Context struct {
	path string
	src  []byte
	cfg  config.Config

	symbols *symtab.Table
	diags   []Diagnostic
}

// NewContext returns a fresh assembler context for one source file. src is
// the full, already-read source text.
func NewContext(path string, src []byte, cfg config.Config) *Context {
	return &Context{
		path:    path,
		src:     src,
		cfg:     cfg,
		symbols: symtab.New(),
	}
}

// Diagnostics returns all diagnostics accumulated across both passes, in
// the order they were reported.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diags
}

func (c *Context) addDiag(pos Position, format string, args ...any) {
	c.diags = append(c.diags, newDiagnostic(pos, format, args...))
}

// Assemble runs both passes over the context's source and returns the
// resulting object. If any diagnostic was reported in either pass, it
// returns ErrAssemblyFailed and the caller must not use the returned
// object (the package-level Assemble wrapper deletes any partial output
// in that case).
func (c *Context) Assemble() (*Object, error) {
	// Pass 1 — symbol collection. No bytes emitted.
	if _, err := c.runPass(false); err != nil {
		return nil, err
	}

	// Pass 2 — emission.
	code, err := c.runPass(true)
	if err != nil {
		return nil, err
	}

	entry, ok := c.symbols.Find(symtab.Label, "_start")
	if !ok {
		// Anchor this diagnostic at line 1, column 1; there is no single
		// source position for a missing global symbol.
		c.addDiag(Position{Line: 1, Column: 1}, "undefined reference to _start")
	}

	if len(c.diags) > 0 {
		return nil, ErrAssemblyFailed
	}

	header := isa.NewHeader(entry.Address, uint64(len(code)))
	return &Object{Header: header, Code: code}, nil
}

// runPass executes one full traversal of the source. When emit is false
// (pass 1) only the symbol table and vpc bookkeeping are updated; when
// true (pass 2) instruction bytes are produced.
func (c *Context) runPass(emit bool) ([]byte, error) {
	lex := NewLexer(c.src)
	vpc := uint64(isa.HeaderSize)
	var code []byte

	for {
		tok := lex.Next()
		c.adoptLexerDiags(lex, emit)

		switch tok.Kind {
		case TokEOF:
			return code, nil

		case TokLabel:
			if !emit {
				err := c.symbols.Push(symtab.Symbol{
					Kind:    symtab.Label,
					Name:    tok.Text,
					Address: vpc,
					Defined: true,
				})
				if err != nil {
					c.addDiag(tok.Pos, "duplicate label %s", tok.Text)
				}
			}
			// Label definitions occupy no bytes and don't advance vpc.

		case TokIdent:
			op, ok := isa.Lookup(tok.Text)
			if !ok {
				if emit {
					c.addDiag(tok.Pos, "unknown mnemonic: %s", tok.Text)
					lex.SkipToNextLine()
				}
				// Pass 1: unknown identifiers are ignored — they may be
				// labels defined later, or errors surfaced in pass 2.
				continue
			}

			kinds, operandToks := c.classifyOperands(lex, op)
			length, err := isa.EncodedLen(op, kinds)
			if err != nil {
				// Can't happen: op came from isa.Lookup.
				return nil, err
			}

			if emit {
				operands, ok := c.resolveOperands(op, kinds, operandToks, tok.Pos)
				if ok {
					code = append(code, isa.EncodeInstruction(op, operands)...)
				}
			}
			vpc += uint64(length)

		default:
			// TokInteger, TokRegister, TokIllegal at statement start: not
			// a label, not a mnemonic. The lexer already reported illegal
			// characters itself; anything else is a syntax error here.
			// Only recorded during emission so it isn't counted twice
			// across the two identical traversals.
			if emit && tok.Kind != TokIllegal {
				c.addDiag(tok.Pos, "unexpected %s: %s", tok.Kind, tok.Text)
			}
			lex.SkipToNextLine()
		}
	}
}

// adoptLexerDiags drains diagnostics the lexer accumulated since the last
// drain: those of the most recent token and of the previous instruction's
// operand tokens. Lexical diagnostics (illegal character, integer
// out of range) are identical in both passes, so they're only recorded
// once, during pass 2, to avoid doubling them up.
func (c *Context) adoptLexerDiags(lex *Lexer, emit bool) {
	lds := lex.TakeDiagnostics()
	if emit {
		c.diags = append(c.diags, lds...)
	}
}

// classifyOperands peeks and, where classifiable, consumes the tokens for
// an instruction's declared operand slots: a register token classifies as
// reg; an integer or identifier token classifies as imm; anything else
// leaves the slot as none (and unconsumed).
func (c *Context) classifyOperands(lex *Lexer, op isa.Opcode) ([2]isa.OperandKind, [2]Token) {
	info, err := isa.Info(op)
	if err != nil {
		return [2]isa.OperandKind{}, [2]Token{}
	}

	var kinds [2]isa.OperandKind
	var toks [2]Token

	for i := 0; i < info.OperandCount; i++ {
		switch lex.Peek(0).Kind {
		case TokRegister:
			kinds[i] = isa.KindReg
			toks[i] = lex.Next()
		case TokInteger, TokIdent:
			kinds[i] = isa.KindImm
			toks[i] = lex.Next()
		default:
			kinds[i] = isa.KindNone
		}
	}
	return kinds, toks
}

// resolveOperands turns classified operand tokens into isa.Operand values
// during emission, resolving identifier operands against the symbol table
// and enforcing the pop-operand-must-be-a-register policy. It returns
// ok=false (and records a diagnostic) if any operand could not be resolved.
func (c *Context) resolveOperands(op isa.Opcode, kinds [2]isa.OperandKind, toks [2]Token, instrPos Position) ([2]isa.Operand, bool) {
	info, err := isa.Info(op)
	if err != nil {
		return [2]isa.Operand{}, false
	}

	var operands [2]isa.Operand
	ok := true

	for i := 0; i < info.OperandCount; i++ {
		switch kinds[i] {
		case isa.KindNone:
			c.addDiag(instrPos, "missing operand %d for %s", i+1, op)
			ok = false

		case isa.KindReg:
			operands[i] = isa.Operand{Kind: isa.KindReg, Reg: toks[i].RegValue}

		case isa.KindImm:
			if toks[i].Kind == TokInteger {
				operands[i] = isa.Operand{Kind: isa.KindImm, Imm: toks[i].IntValue}
				continue
			}
			sym, found := c.symbols.Find(symtab.Label, toks[i].Text)
			if !found {
				c.addDiag(toks[i].Pos, "identifier not defined: %s", toks[i].Text)
				ok = false
				continue
			}
			operands[i] = isa.Operand{Kind: isa.KindImm, Imm: int64(sym.Address)}
		}
	}

	if op == isa.Pop && info.OperandCount > 0 && kinds[0] != isa.KindNone && kinds[0] != isa.KindReg {
		c.addDiag(instrPos, "pop operand must be a register")
		ok = false
	}

	return operands, ok
}
