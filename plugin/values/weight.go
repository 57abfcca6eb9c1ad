package values

import "strconv"

// DefaultWeight is the weight assigned to a handler type that declares
// none. Zero keeps undeclared handlers ahead of anything that explicitly
// asks to run late and behind anything that asks to run early.
const DefaultWeight = Weight(0)

// Weight is the ordering key for handler types. Lower weights sort
// earlier; ties are broken by discovery order.
type Weight int

// NewWeight creates a Weight from a raw integer.
func NewWeight(w int) Weight {
	return Weight(w)
}

// Int returns the raw integer value.
func (w Weight) Int() int {
	return int(w)
}

// Less reports whether w sorts before other.
func (w Weight) Less(other Weight) bool {
	return w < other
}

// String returns the decimal representation.
func (w Weight) String() string {
	return strconv.Itoa(int(w))
}
