package coroengine

// SaveMask selects which binding categories a coroutine's switches
// capture and restore. Bits are combinable.
type SaveMask uint32

const (
	// SaveArgs captures the current argument list.
	SaveArgs SaveMask = 1 << iota
	// SaveTopic captures the default/topic value.
	SaveTopic
	// SaveLastErr captures the last error value.
	SaveLastErr
	// SaveInputSep captures the input record separator.
	SaveInputSep
	// SaveChannel captures the default I/O channel.
	SaveChannel
)

// SaveAll selects every binding category.
const SaveAll = SaveArgs | SaveTopic | SaveLastErr | SaveInputSep | SaveChannel

// SaveDefault is the mask assigned to newly created coroutines.
const SaveDefault = SaveAll

// SaveQuery is the sentinel passed to Save to read a coroutine's mask
// without replacing it. It is never a valid mask itself.
const SaveQuery SaveMask = ^SaveMask(0)

// Clamp drops bits outside the defined categories. Out-of-range bits
// are clamped rather than rejected so that a mask built against a
// newer engine degrades to the categories this engine knows about.
func (m SaveMask) Clamp() SaveMask {
	return m & SaveAll
}

// Valid reports whether the mask contains only defined category bits.
func (m SaveMask) Valid() bool {
	return m&^SaveAll == 0
}

// Has reports whether every bit of want is set in m.
func (m SaveMask) Has(want SaveMask) bool {
	return m&want == want
}
