package gridbox

// CompMask selects a subset of the components named by a copy or
// serialization call. Bit i corresponds to the i-th component of the
// operation's component range, not to an absolute component index. A mask
// addresses at most maskBits components per call; masked operations reject
// wider ranges.
type CompMask uint32

// maskBits is the number of components a single CompMask can address.
const maskBits = 32

// AllComps selects every component.
const AllComps CompMask = ^CompMask(0)

// Has reports whether component i of the operation's range is selected.
func (m CompMask) Has(i int) bool {
	return m&(1<<uint(i)) != 0
}

// Count returns the number of selected components among the first n.
func (m CompMask) Count(n int) int {
	c := 0
	for i := 0; i < n; i++ {
		if m.Has(i) {
			c++
		}
	}
	return c
}
