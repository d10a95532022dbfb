package rtl

// Registers is a double-buffered register file. R holds the committed value
// seen by the outside world, and the next value is computed as a pure function
// of R and the inputs, then swapped in on the clock edge.
type Registers[T any] struct {
	r, v        T
	resetVector T
	mode        ResetMode
}

// NewRegisters creates a register file that starts at the reset vector.
func NewRegisters[T any](resetVector T, mode ResetMode) *Registers[T] {
	return &Registers[T]{
		r:           resetVector,
		v:           resetVector,
		resetVector: resetVector,
		mode:        mode,
	}
}

// Mode returns the reset discipline.
func (b *Registers[T]) Mode() ResetMode {
	return b.mode
}

// R returns the committed register values.
func (b *Registers[T]) R() T {
	return b.r
}

// Next returns the value computed by the last Eval.
func (b *Registers[T]) Next() T {
	return b.v
}

// ResetVector returns the value the registers take on reset.
func (b *Registers[T]) ResetVector() T {
	return b.resetVector
}

// Eval computes the next value from the committed one. comb receives a copy
// of the committed registers and returns the next value. With a synchronous
// reset and nrst low, the reset vector replaces whatever comb returned.
func (b *Registers[T]) Eval(nrst bool, comb func(r T) T) {
	next := comb(b.r)

	if b.mode == SyncReset && !nrst {
		next = b.resetVector
	}

	b.v = next
}

// Commit swaps in the next value. With an asynchronous reset and nrst low,
// the registers are held at the reset vector instead.
func (b *Registers[T]) Commit(nrst bool) {
	if b.mode == AsyncReset && !nrst {
		b.ResetNow()
		return
	}

	b.r = b.v
}

// ResetNow overwrites both banks with the reset vector.
func (b *Registers[T]) ResetNow() {
	b.r = b.resetVector
	b.v = b.resetVector
}
