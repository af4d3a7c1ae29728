package coroengine

import "io"

// Bindings is the set of dynamically scoped values that follow the
// running coroutine. Exactly one Bindings set is live at any time; a
// coroutine's save-mask decides which fields its switches capture and
// restore. Fields excluded from the mask keep whatever value the
// previously running coroutine left behind.
type Bindings struct {
	// Args is the current argument list.
	Args []any
	// Topic is the default value implicit operations act on.
	Topic any
	// LastErr is the most recent error value.
	LastErr error
	// InputSep is the input record separator.
	InputSep string
	// Channel is the default I/O channel.
	Channel io.ReadWriter
}

// CopyFrom copies the fields selected by mask from src into b,
// leaving the remaining fields untouched.
func (b *Bindings) CopyFrom(src *Bindings, mask SaveMask) {
	if mask.Has(SaveArgs) {
		b.Args = src.Args
	}
	if mask.Has(SaveTopic) {
		b.Topic = src.Topic
	}
	if mask.Has(SaveLastErr) {
		b.LastErr = src.LastErr
	}
	if mask.Has(SaveInputSep) {
		b.InputSep = src.InputSep
	}
	if mask.Has(SaveChannel) {
		b.Channel = src.Channel
	}
}
