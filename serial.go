package gridbox

// LinearOut serializes a sub-region and component range into buf in
// deterministic order: selected components outermost (component-major), cells
// in canonical BoxIter order within each component. The format carries no
// header; both ends of an exchange must agree on (region, startComp, endComp,
// mask) out of band. The component range is inclusive on both ends.
//
// buf must hold at least LinearCount elements. LinearOut returns the number
// of elements written.
func (a *Array[T]) LinearOut(buf []T, region Box, startComp, endComp int, mask CompMask) int {
	assert(a.box.ContainsBox(region), "serialized region outside array box")
	assert(startComp >= 0 && endComp < a.ncomp && startComp <= endComp,
		"component range out of bounds")
	assert(endComp-startComp+1 <= maskBits, "component range wider than the mask")
	assert(len(buf) >= a.LinearCount(region, startComp, endComp, mask),
		"serialization buffer too small")

	n := 0
	for comp := startComp; comp <= endComp; comp++ {
		if !mask.Has(comp - startComp) {
			continue
		}
		for it := NewBoxIter(region); it.Ok(); it.Next() {
			buf[n] = a.At(it.Coord(), comp)
			n++
		}
	}
	return n
}

// LinearIn deserializes buf into a sub-region and component range, exactly
// inverting LinearOut for identical (region, startComp, endComp, mask).
// It returns the number of elements consumed.
func (a *Array[T]) LinearIn(buf []T, region Box, startComp, endComp int, mask CompMask) int {
	assert(a.box.ContainsBox(region), "deserialized region outside array box")
	assert(startComp >= 0 && endComp < a.ncomp && startComp <= endComp,
		"component range out of bounds")
	assert(endComp-startComp+1 <= maskBits, "component range wider than the mask")
	assert(len(buf) >= a.LinearCount(region, startComp, endComp, mask),
		"deserialization buffer too small")

	n := 0
	for comp := startComp; comp <= endComp; comp++ {
		if !mask.Has(comp - startComp) {
			continue
		}
		for it := NewBoxIter(region); it.Ok(); it.Next() {
			a.Set(it.Coord(), comp, buf[n])
			n++
		}
	}
	return n
}

// LinearCount returns the number of elements LinearOut produces (and
// LinearIn consumes) for the given region, component range, and mask.
func (a *Array[T]) LinearCount(region Box, startComp, endComp int, mask CompMask) int {
	assert(endComp-startComp+1 <= maskBits, "component range wider than the mask")
	return region.Size() * mask.Count(endComp-startComp+1)
}
