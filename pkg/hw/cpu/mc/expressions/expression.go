package expressions

import (
	"fmt"
	"strconv"
)

// Symbolic value used as an instruction operand.
//
// Expressions are immutable. An expression may be folded into an integer
// constant at encoding time (e.g. 4+4) or may depend on information only
// known after layout or linking (e.g. a symbol address), in which case the
// emitter records a fixup for it.
type Expression interface {
	fmt.Stringer

	// Tries to fold the expression into an integer constant without any
	// layout or link time information. Returns false if it cannot be folded
	EvaluateAsAbsolute() (int64, bool)
}

// Implemented by expressions that carry an explicit, target specific,
// relocation request (e.g. %hi(sym))
type Annotated interface {
	Expression

	// Returns the target variant requested by the expression
	Variant() VariantKind
}

// Integer constant
type Constant struct {
	Value int64
}

func (c *Constant) String() string {
	return strconv.FormatInt(c.Value, 10)
}

func (c *Constant) EvaluateAsAbsolute() (int64, bool) {
	return c.Value, true
}

// Reference to a symbol whose address is unknown until layout or link time
type SymbolRef struct {
	Name string
}

func (s *SymbolRef) String() string {
	return s.Name
}

func (s *SymbolRef) EvaluateAsAbsolute() (int64, bool) {
	return 0, false
}

// Binary arithmetic operator
type BinaryOp uint

const (
	BinaryOp_Add BinaryOp = iota
	BinaryOp_Sub
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryOp_Add:
		return "+"
	case BinaryOp_Sub:
		return "-"
	}

	panic("unreachable")
}

// Binary arithmetic expression
type Binary struct {
	Op  BinaryOp
	LHS Expression
	RHS Expression
}

func (b *Binary) String() string {
	// Binary expressions are left associative
	if _, nested := b.RHS.(*Binary); nested {
		return fmt.Sprintf("%v%v(%v)", b.LHS, b.Op, b.RHS)
	}

	return fmt.Sprintf("%v%v%v", b.LHS, b.Op, b.RHS)
}

func (b *Binary) EvaluateAsAbsolute() (int64, bool) {
	lhs, ok := b.LHS.EvaluateAsAbsolute()
	if !ok {
		return 0, false
	}

	rhs, ok := b.RHS.EvaluateAsAbsolute()
	if !ok {
		return 0, false
	}

	switch b.Op {
	case BinaryOp_Add:
		return lhs + rhs, true
	case BinaryOp_Sub:
		return lhs - rhs, true
	}

	return 0, false
}

// Target specific expression, a sub-expression wrapped in a relocation
// modifier such as %hi(sym) or %got13(sym)
type Target struct {
	Kind VariantKind
	Expr Expression
}

func (t *Target) String() string {
	return fmt.Sprintf("%v(%v)", t.Kind, t.Expr)
}

func (t *Target) Variant() VariantKind {
	return t.Kind
}

// Folds the modifier if both the sub-expression is constant and the modifier
// is an absolute bit-range extraction (%hi, %lo, %h44, ...)
func (t *Target) EvaluateAsAbsolute() (int64, bool) {
	value, ok := t.Expr.EvaluateAsAbsolute()
	if !ok {
		return 0, false
	}

	return t.Kind.Apply(value)
}

// Returns the innermost symbol referenced by the expression, if any. Binary
// expressions are searched left to right
func ReferencedSymbol(expr Expression) (*SymbolRef, bool) {
	switch e := expr.(type) {
	case *SymbolRef:
		return e, true
	case *Target:
		return ReferencedSymbol(e.Expr)
	case *Binary:
		if symbol, ok := ReferencedSymbol(e.LHS); ok {
			return symbol, true
		}

		return ReferencedSymbol(e.RHS)
	}

	return nil, false
}

func Const(value int64) *Constant {
	return &Constant{Value: value}
}

func Symbol(name string) *SymbolRef {
	return &SymbolRef{Name: name}
}

func Add(lhs, rhs Expression) *Binary {
	return &Binary{Op: BinaryOp_Add, LHS: lhs, RHS: rhs}
}

func Sub(lhs, rhs Expression) *Binary {
	return &Binary{Op: BinaryOp_Sub, LHS: lhs, RHS: rhs}
}

func Wrap(kind VariantKind, expr Expression) *Target {
	return &Target{Kind: kind, Expr: expr}
}
