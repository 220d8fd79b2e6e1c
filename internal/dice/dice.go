// Package dice provides the randomness used by the game: die rolls, uniform
// choices among options, and a scripted Source for reproducing outcomes.
package dice

import (
	"math/rand"
	"time"
)

// Source is a uniform random generator. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniformly distributed integer in [0, n). It panics if
	// n <= 0.
	Intn(n int) int
}

// Roller rolls dice and makes choices using a Source.
type Roller struct {
	src Source
	pos int64
}

// New creates a Roller that draws from src. If src is nil, a time-seeded
// *rand.Rand is used.
func New(src Source) *Roller {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Roller{src: src}
}

// NewSeeded creates a Roller backed by a *rand.Rand with the given seed.
func NewSeeded(seed int64) *Roller {
	return New(rand.New(rand.NewSource(seed)))
}

// Roll returns the result of one die with the given number of sides, in
// [1, sides]. A die with fewer than one side always rolls 0.
func (r *Roller) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	r.pos++
	return r.src.Intn(sides) + 1
}

// RollMod rolls a single die and adds mod to it. Both the natural roll and the
// modified total are returned.
func (r *Roller) RollMod(sides, mod int) (natural, total int) {
	natural = r.Roll(sides)
	return natural, natural + mod
}

// Index returns a uniformly chosen index in [0, n). If n is less than 1, -1
// is returned.
func (r *Roller) Index(n int) int {
	if n < 1 {
		return -1
	}
	r.pos++
	return r.src.Intn(n)
}

// Choose returns a uniformly chosen element of options, or "" if there are
// none.
func (r *Roller) Choose(options []string) string {
	idx := r.Index(len(options))
	if idx < 0 {
		return ""
	}
	return options[idx]
}

// Position returns the number of values drawn from the Source so far.
func (r *Roller) Position() int64 {
	return r.pos
}

// Sequence is a Source that replays a fixed list of die faces. Each call to
// Intn(n) consumes the next face f and returns f-1 clamped to [0, n), so a
// Sequence of 20 fed to a d20 rolls a natural 20. When the faces run out the
// sequence starts over. An empty Sequence always returns 0.
type Sequence struct {
	faces []int
	next  int
}

// NewSequence creates a Sequence that yields the given faces in order.
func NewSequence(faces ...int) *Sequence {
	return &Sequence{faces: append([]int{}, faces...)}
}

// Intn returns the next scripted face, shifted to be zero-based and clamped
// to [0, n).
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("dice: Sequence.Intn called with n <= 0")
	}
	if len(s.faces) == 0 {
		return 0
	}

	f := s.faces[s.next%len(s.faces)] - 1
	s.next++

	if f < 0 {
		f = 0
	}
	if f >= n {
		f = n - 1
	}
	return f
}
