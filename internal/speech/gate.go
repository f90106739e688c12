package speech

import "sync"

// Gate holds the flush-eligibility flags described in spec.md §4.3: the
// speech buffer may only be flushed when both Silence and Tempsilence are
// false. Delaying guards against scheduling more than one coalescing flush
// for the same 5ms window (spec.md §4.3's "delaying_output").
type Gate struct {
	mu          sync.Mutex
	silence     bool
	tempsilence bool
	delaying    bool
}

// Eligible reports whether a flush may proceed right now.
func (g *Gate) Eligible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.silence && !g.tempsilence
}

// SetSilence sets the persistent silence flag (the "quiet" toggle goes
// through this; the per-keystroke reset clears only tempsilence).
func (g *Gate) SetSilence(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.silence = v
}

func (g *Gate) Silence() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.silence
}

// SetTempsilence arms/disarms the transient mute used while a cursor-motion
// key's delayed speech decision is pending.
func (g *Gate) SetTempsilence(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tempsilence = v
}

// BeginDelaying returns true and marks delaying active iff no coalescing
// flush is already pending; callers that get false must not schedule a
// second one.
func (g *Gate) BeginDelaying() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.delaying {
		return false
	}
	g.delaying = true
	return true
}

// EndDelaying clears the pending-flush marker.
func (g *Gate) EndDelaying() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.delaying = false
}
