package graphics

import "testing"

func TestArenaInsertGet(t *testing.T) {
	var a arena[int]
	h := a.insert(42)
	if !h.valid() {
		t.Fatal("insert returned invalid handle")
	}
	v, ok := a.get(h)
	if !ok || *v != 42 {
		t.Fatalf("get = %v, %v, want 42, true", v, ok)
	}
	if a.count() != 1 {
		t.Errorf("count = %d, want 1", a.count())
	}
}

func TestArenaZeroHandleInvalid(t *testing.T) {
	var a arena[int]
	a.insert(1)
	if _, ok := a.get(handle{}); ok {
		t.Error("zero handle resolved to a live slot")
	}
}

func TestArenaRemoveInvalidatesHandle(t *testing.T) {
	var a arena[int]
	h := a.insert(7)
	v, ok := a.remove(h)
	if !ok || v != 7 {
		t.Fatalf("remove = %v, %v, want 7, true", v, ok)
	}
	if _, ok := a.get(h); ok {
		t.Error("handle still resolves after remove")
	}
	if _, ok := a.remove(h); ok {
		t.Error("double remove succeeded")
	}
	if a.count() != 0 {
		t.Errorf("count = %d, want 0", a.count())
	}
}

func TestArenaStaleHandleAfterSlotReuse(t *testing.T) {
	var a arena[string]
	old := a.insert("first")
	a.remove(old)

	// The freed slot is reused with a bumped generation.
	next := a.insert("second")
	if next.index != old.index {
		t.Fatalf("slot not reused: old index %d, new index %d", old.index, next.index)
	}
	if _, ok := a.get(old); ok {
		t.Error("stale handle resolved to the slot's new occupant")
	}
	v, ok := a.get(next)
	if !ok || *v != "second" {
		t.Errorf("fresh handle get = %v, %v, want second, true", v, ok)
	}
}

func TestArenaEachVisitsOnlyLive(t *testing.T) {
	var a arena[int]
	h1 := a.insert(1)
	a.insert(2)
	a.insert(3)
	a.remove(h1)

	sum := 0
	a.each(func(v *int) { sum += *v })
	if sum != 5 {
		t.Errorf("each visited sum %d, want 5", sum)
	}
}

func TestArenaReset(t *testing.T) {
	var a arena[int]
	h := a.insert(1)
	a.reset()
	if a.count() != 0 {
		t.Errorf("count after reset = %d, want 0", a.count())
	}
	if _, ok := a.get(h); ok {
		t.Error("handle survived reset")
	}
}

func TestTextureHandleZeroValue(t *testing.T) {
	var h TextureHandle
	if h.Valid() {
		t.Error("zero TextureHandle reports valid")
	}
	var rt RenderTargetHandle
	if rt.Valid() {
		t.Error("zero RenderTargetHandle reports valid (it addresses the default framebuffer)")
	}
}
