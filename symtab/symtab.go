// Package symtab is the assembler's symbol table: a flat associative
// container from (kind, name) to symbol record.
package symtab

import "github.com/pkg/errors"

// Kind identifies the category of a symbol. Only Label exists today; the
// type is left open the way the reference's kind field is, so a future
// symbol category doesn't require reshaping Table.
type Kind int

const (
	Label Kind = iota
)

// Symbol is a named entity in the table. Address and Defined are only
// meaningful for Kind == Label.
type Symbol struct {
	Kind    Kind
	Name    string
	Address uint64
	Defined bool
}

// ErrDuplicateSymbol is wrapped with the symbol's name by Push.
var ErrDuplicateSymbol = errors.New("duplicate symbol")

// Table is a flat symbol table. It is not safe for concurrent use — it is
// owned exclusively by one assembler Context for the lifetime of one
// assembly.
type Table struct {
	symbols []Symbol
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{}
}

// Find looks up a symbol by (kind, name). An O(n) scan is acceptable given
// expected program sizes; duplicates are impossible by Push's insertion
// rule.
func (t *Table) Find(kind Kind, name string) (Symbol, bool) {
	for _, s := range t.symbols {
		if s.Kind == kind && s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// Push appends sym, rejecting it if a symbol with the same (kind, name)
// already exists. Names are copied by value from the caller's string.
func (t *Table) Push(sym Symbol) error {
	if _, exists := t.Find(sym.Kind, sym.Name); exists {
		return errors.Wrapf(ErrDuplicateSymbol, "%s", sym.Name)
	}
	t.symbols = append(t.symbols, sym)
	return nil
}
