package command

// DefaultHistorySize is the number of commands a History keeps when no size
// is given.
const DefaultHistorySize = 25

// History is a bounded log of recently entered commands. Once full, adding a
// command discards the oldest one.
type History struct {
	size    int
	entries []string
}

// NewHistory creates a History that keeps up to size commands. If size is
// less than 1, DefaultHistorySize is used.
func NewHistory(size int) *History {
	if size < 1 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add records a command.
func (h *History) Add(cmd string) {
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.size {
		h.entries = append([]string{}, h.entries[len(h.entries)-h.size:]...)
	}
}

// Recent returns up to n of the most recent commands, oldest first. If n is
// less than 1, all of them are returned.
func (h *History) Recent(n int) []string {
	start := 0
	if n > 0 && len(h.entries) > n {
		start = len(h.entries) - n
	}
	return append([]string{}, h.entries[start:]...)
}

// Len returns the number of commands held.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear removes every command.
func (h *History) Clear() {
	h.entries = nil
}
