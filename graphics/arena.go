package graphics

// handle addresses a slot in an arena. The generation counter distinguishes
// the current occupant of a slot from earlier, deleted occupants, so a
// retained handle can be detected as stale instead of silently resolving to
// whatever resource reused the slot.
type handle struct {
	index uint32
	gen   uint32
}

// zero generation marks the invalid handle.
func (h handle) valid() bool { return h.gen != 0 }

// TextureHandle is a non-owning reference to a GPU texture. The zero value is
// invalid. Handles carry the id of the Context that issued them, so using one
// against another context fails with ErrWrongContext instead of resolving to
// an unrelated resource.
type TextureHandle struct {
	h   handle
	ctx uint32
}

// Valid reports whether the handle was ever issued. It does not check
// staleness; resolution against the owning Context does that.
func (t TextureHandle) Valid() bool { return t.h.valid() }

// RenderTargetHandle is a non-owning reference to a framebuffer plus its
// backing color texture. The zero value addresses the context's default
// framebuffer (the window surface), which is always valid as a draw
// destination and never as a sampling source.
type RenderTargetHandle struct {
	h   handle
	ctx uint32
}

// Valid reports whether the handle refers to an offscreen target rather than
// the default framebuffer.
func (t RenderTargetHandle) Valid() bool { return t.h.valid() }

type arenaSlot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// arena is a slot table with generation counters. It owns no GPU state; the
// Context stores GL object names in the payloads and performs the GL calls.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	live  int
}

func (a *arena[T]) insert(v T) handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	s.live = true
	s.val = v
	a.live++
	return handle{index: idx, gen: s.gen}
}

// get resolves a handle to its payload. It fails for the zero handle, for
// deleted slots, and for handles whose generation no longer matches.
func (a *arena[T]) get(h handle) (*T, bool) {
	if !h.valid() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return &s.val, true
}

// remove frees the slot and bumps nothing further; the generation was already
// advanced at insert time, so the retired handle fails get from now on.
func (a *arena[T]) remove(h handle) (T, bool) {
	var zero T
	v, ok := a.get(h)
	if !ok {
		return zero, false
	}
	out := *v
	s := &a.slots[h.index]
	s.live = false
	s.val = zero
	a.free = append(a.free, h.index)
	a.live--
	return out, true
}

// each visits every live payload. Used for bulk teardown.
func (a *arena[T]) each(f func(*T)) {
	for i := range a.slots {
		if a.slots[i].live {
			f(&a.slots[i].val)
		}
	}
}

func (a *arena[T]) count() int { return a.live }

func (a *arena[T]) reset() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.live = 0
}
