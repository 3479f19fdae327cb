// Package leximax implements a leximax multi-objective Boolean
// optimization encoder: given hard clauses and an ordered list of
// soft-clause objectives, it drives an external MaxSAT/PB/LP solver
// through one iteration per objective, freezing each objective's
// worst-case cost as a hard bound before moving to the next.
package leximax

import "fmt"

// Var is a strictly positive Boolean variable identifier.
type Var int

// Lit is a signed literal: positive selects Var true, negative selects
// its negation. The zero literal is never valid.
type Lit int

// NewLit builds a literal over v with the given polarity.
func NewLit(v Var, negated bool) Lit {
	if negated {
		return Lit(-v)
	}
	return Lit(v)
}

// Pos returns the positive literal for v.
func Pos(v Var) Lit { return Lit(v) }

// Neg returns the negative literal for v.
func Neg(v Var) Lit { return Lit(-v) }

// Var returns the underlying variable of a literal.
func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l)
	}
	return Var(l)
}

// Negated reports whether l is the negative polarity of its variable.
func (l Lit) Negated() bool { return l < 0 }

// Negate returns the opposite-polarity literal over the same variable.
func (l Lit) Negate() Lit { return -l }

func (l Lit) String() string { return fmt.Sprintf("%d", int(l)) }

// Clause is a finite disjunction of literals.
type Clause []Lit

func (c Clause) String() string {
	return fmt.Sprintf("%v", []Lit(c))
}

// WeightedClause is a soft clause with its penalty for being falsified.
type WeightedClause struct {
	Clause Clause
	Weight int
}

// Objective is one leximax coordinate: an ordered list of soft-clause
// terms whose cost under an assignment is the count of falsified
// terms' negations being satisfied (equivalently, the count of true
// terms per spec.md's "Objective" data model).
type Objective struct {
	Terms []Lit
}
