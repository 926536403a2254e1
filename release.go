package quad

// releaser is a LIFO stack of release functions.
//
// Objects are pushed as soon as they are created. On a failure path the
// stack is unwound in place; on success its ownership moves to the caller
// with take, so the deferred unwind becomes a no-op.
type releaser struct {
	fns []func()
}

func (r *releaser) push(fn func()) {
	r.fns = append(r.fns, fn)
}

// unwind runs and clears all pushed functions, most recent first.
func (r *releaser) unwind() {
	for i := len(r.fns) - 1; i >= 0; i-- {
		fn := r.fns[i]
		r.fns[i] = nil
		fn()
	}
	r.fns = r.fns[:0]
}

// take moves the stack into a new releaser and leaves r empty.
func (r *releaser) take() *releaser {
	out := &releaser{fns: r.fns}
	r.fns = nil
	return out
}

func (r *releaser) len() int { return len(r.fns) }
