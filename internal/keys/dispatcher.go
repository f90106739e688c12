// Package keys implements the input-side key dispatcher: a stack of
// handlers, each owning a keymap of exact byte-sequence bindings, plus the
// double-press repeat-timeout rule described in spec.md §4.4.
package keys

import (
	"bytes"
	"time"
)

// OutcomeKind tells the dispatcher what to do after a binding or a
// handler's Unknown method runs.
type OutcomeKind int

const (
	// KindConsumed means the key was fully handled; nothing is forwarded
	// to the child and the handler stack is unchanged.
	KindConsumed OutcomeKind = iota
	// KindPassthrough means the raw chunk should be forwarded to the
	// child process verbatim.
	KindPassthrough
	// KindPop means the active handler is done and should be removed
	// from the stack, returning control to whatever is beneath it.
	KindPop
	// KindPush means a new handler should be pushed on top of the stack
	// (e.g. entering the config menu or a copy-selection mode).
	KindPush
)

// Outcome is the result of dispatching one chunk of input to a binding or
// to a handler's Unknown fallback.
type Outcome struct {
	Kind        OutcomeKind
	Passthrough []byte
	Push        Handler
}

// Consumed reports a fully-handled key with no stack change.
func Consumed() Outcome { return Outcome{Kind: KindConsumed} }

// Passthrough reports that chunk should be written to the child verbatim.
func Passthrough(chunk []byte) Outcome {
	return Outcome{Kind: KindPassthrough, Passthrough: chunk}
}

// Pop reports that the active handler should be removed from the stack.
func Pop() Outcome { return Outcome{Kind: KindPop} }

// PushHandler reports that h should be pushed on top of the stack.
func PushHandler(h Handler) Outcome { return Outcome{Kind: KindPush, Push: h} }

// Binding is a zero-argument key action. It closes over whatever session
// state it needs to speak or mutate.
type Binding func() Outcome

// KeyMap maps an exact input byte sequence (as a string key) to the
// binding it triggers. A doubled sequence (chunk+chunk) is a distinct map
// entry representing a double-press action, not derived automatically.
type KeyMap map[string]Binding

// Handler is one level of the key-dispatch stack. Bindings returns its
// keymap; Unknown is invoked for a chunk with no binding (and, on a
// same-key repeat within the timeout, no doubled-chunk binding either).
type Handler interface {
	Bindings() KeyMap
	Unknown(chunk []byte) Outcome
}

// repeatKeyTimeout is the window within which pressing the same key twice
// is looked up under its doubled byte sequence.
const repeatKeyTimeout = 500 * time.Millisecond

// Dispatcher owns the handler stack and the double-press timing state.
// The bottom of the stack (index 0) is the root handler and is never
// popped.
type Dispatcher struct {
	stack       []Handler
	lastKey     []byte
	lastKeyTime time.Time
}

// NewDispatcher seeds the stack with root, which is never removed.
func NewDispatcher(root Handler) *Dispatcher {
	return &Dispatcher{stack: []Handler{root}}
}

// Active returns the handler currently on top of the stack.
func (d *Dispatcher) Active() Handler {
	return d.stack[len(d.stack)-1]
}

// Depth reports how many handlers are on the stack, root included.
func (d *Dispatcher) Depth() int {
	return len(d.stack)
}

// Dispatch routes one chunk of raw input through the active handler,
// applying the double-press repeat rule, and updates the stack according
// to the resulting Outcome's Kind. It returns the bytes, if any, that the
// caller must forward to the child (KindPassthrough outcomes).
func (d *Dispatcher) Dispatch(chunk []byte) []byte {
	h := d.Active()
	keymap := h.Bindings()

	now := time.Now()
	delta := now.Sub(d.lastKeyTime)
	d.lastKeyTime = now

	var out Outcome
	if binding, ok := keymap[string(chunk)]; !ok {
		out = h.Unknown(chunk)
	} else if bytes.Equal(d.lastKey, chunk) && delta <= repeatKeyTimeout {
		repeat := append(append([]byte(nil), chunk...), chunk...)
		if repeatBinding, ok := keymap[string(repeat)]; ok {
			out = repeatBinding()
		} else {
			out = binding()
		}
	} else {
		out = binding()
	}
	d.lastKey = append(d.lastKey[:0], chunk...)

	return d.apply(out)
}

func (d *Dispatcher) apply(out Outcome) []byte {
	switch out.Kind {
	case KindPop:
		if len(d.stack) > 1 {
			d.stack = d.stack[:len(d.stack)-1]
		}
	case KindPush:
		if out.Push != nil {
			d.stack = append(d.stack, out.Push)
		}
	case KindPassthrough:
		return out.Passthrough
	}
	return nil
}
