package keys

// BufferHandler accumulates raw input bytes until CR or LF, then hands the
// accumulated text to onAccept and pops itself. It has no bindings of its
// own: every chunk, recognized or not, is appended verbatim. This backs
// the config menu's value prompts (rate, volume, voice, cursor delay).
type BufferHandler struct {
	onAccept func(value string)
	buf      []byte
}

// NewBufferHandler returns a handler that calls onAccept with the
// accumulated text once the user presses Enter.
func NewBufferHandler(onAccept func(value string)) *BufferHandler {
	return &BufferHandler{onAccept: onAccept}
}

// Bindings is empty: BufferHandler never matches a binding, so every
// chunk always reaches Unknown.
func (b *BufferHandler) Bindings() KeyMap { return nil }

// Unknown accumulates chunk, or accepts and pops on CR/LF.
func (b *BufferHandler) Unknown(chunk []byte) Outcome {
	if len(chunk) == 1 && (chunk[0] == '\r' || chunk[0] == '\n') {
		value := string(b.buf)
		if b.onAccept != nil {
			b.onAccept(value)
		}
		return Pop()
	}
	b.buf = append(b.buf, chunk...)
	return Consumed()
}
