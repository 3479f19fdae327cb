package leximax

// IDAllocator hands out fresh variable ids from a monotonically
// increasing counter seeded at the highest variable id already present
// in the input. No recycling; concurrent access is not supported
// (the encoder is single-threaded by design, see spec.md §5).
type IDAllocator struct {
	top Var
}

// NewIDAllocator seeds the allocator above the highest variable id
// already used by the caller's hard clauses and objectives.
func NewIDAllocator(maxInputVar Var) *IDAllocator {
	return &IDAllocator{top: maxInputVar}
}

// Fresh returns a brand-new variable id and advances the counter.
func (a *IDAllocator) Fresh() Var {
	a.top++
	return a.top
}

// FreshN returns n brand-new, contiguous variable ids.
func (a *IDAllocator) FreshN(n int) []Var {
	vars := make([]Var, n)
	for i := range vars {
		vars[i] = a.Fresh()
	}
	return vars
}

// Top returns the highest variable id issued or observed so far.
func (a *IDAllocator) Top() Var { return a.top }

// Observe bumps the counter if v is higher than anything seen, without
// issuing v itself. Used by ClauseStore when ingesting clauses that
// may reference externally-numbered variables.
func (a *IDAllocator) Observe(v Var) {
	if v > a.top {
		a.top = v
	}
}
