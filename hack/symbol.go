package hack

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strconv"

	"github.com/ezrec/hackasm/internal"
)

const (
	ADDRESS_MAX   = 0x7fff // Largest 15-bit address.
	VARIABLE_BASE = 16     // First RAM address handed out to variables.
	SCREEN_BASE   = 0x4000 // Memory mapped screen.
	KBD_ADDRESS   = 0x6000 // Memory mapped keyboard.
)

// Architecture reserved symbols.
var sysSymbol = func() map[string]int {
	symbol := map[string]int{
		"SCREEN": SCREEN_BASE,
		"KBD":    KBD_ADDRESS,
		"SP":     0,
		"LCL":    1,
		"ARG":    2,
		"THIS":   3,
		"THAT":   4,
	}
	for n := range 16 {
		symbol["R"+strconv.Itoa(n)] = n
	}
	return symbol
}()

// SymbolTable maps symbols to addresses for a single assembly run.
type SymbolTable struct {
	symbol map[string]int
	next   int
}

// NewSymbolTable returns a table holding only the reserved symbols.
func NewSymbolTable() (st *SymbolTable) {
	st = &SymbolTable{
		symbol: maps.Clone(sysSymbol),
		next:   VARIABLE_BASE,
	}
	return
}

// Bind binds name to address, replacing any previous binding.
func (st *SymbolTable) Bind(name string, address int) {
	st.symbol[name] = address
}

// Allocate binds name to the next free variable address.
// The caller ensures name is not already bound.
func (st *SymbolTable) Allocate(name string) (address int, err error) {
	if st.next > ADDRESS_MAX {
		err = ErrAddressRange(st.next)
		return
	}

	address = st.next
	st.symbol[name] = address
	st.next++

	return
}

// Lookup returns the address bound to name.
func (st *SymbolTable) Lookup(name string) (address int, ok bool) {
	address, ok = st.symbol[name]
	return
}

// Reserved reports whether name is an architecture symbol.
func Reserved(name string) bool {
	_, ok := sysSymbol[name]
	return ok
}

// Len returns the number of bound symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbol)
}

// All iterates the reserved symbols, then every other binding, each
// group ordered by address and then name.
func (st *SymbolTable) All() iter.Seq2[string, int] {
	var reserved, user []string
	for name := range st.symbol {
		if Reserved(name) {
			reserved = append(reserved, name)
		} else {
			user = append(user, name)
		}
	}

	return internal.IterSeq2Concat(st.ordered(reserved), st.ordered(user))
}

func (st *SymbolTable) ordered(names []string) iter.Seq2[string, int] {
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(st.symbol[a], st.symbol[b]), cmp.Compare(a, b))
	})

	return internal.IterSeq2Lookup(names, func(name string) int { return st.symbol[name] })
}
