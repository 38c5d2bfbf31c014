package hack

// Kind is the classification of a normalized source line.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_BLANK   = Kind(0) // blank
	KIND_ADDRESS = Kind(1) // address
	KIND_COMPUTE = Kind(2) // compute
	KIND_LABEL   = Kind(3) // label
)

// Instruction is one non-blank source line after normalization.
type Instruction struct {
	LineNo  int    // Source line number, 1 based.
	Source  string // Raw source line.
	Kind    Kind   // Line classification.
	Text    string // Normalized text.
	Address int    // ROM address. Labels hold the address they bind to.
	Label   string // Label name, for KIND_LABEL only.
}

