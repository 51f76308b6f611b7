//go:build !gridbox2d

package gridbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fillLinearField(a *Array[int]) {
	for comp := 0; comp < a.NComp(); comp++ {
		for it := NewBoxIter(a.Box()); it.Ok(); it.Next() {
			c := it.Coord()
			a.Set(c, comp, 1000*comp+100*c[0]+10*c[1]+c[2])
		}
	}
}

func TestLinearRoundTrip(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(4, 3, 2))
	src := NewArray[int](b, 3)
	fillLinearField(src)

	tests := []struct {
		name   string
		region Box
		c0, c1 int
		mask   CompMask
	}{
		{"full", b, 0, 2, AllComps},
		{"subregion", NewBox(MakeCoord(1, 1, 0), MakeCoord(3, 2, 2)), 0, 2, AllComps},
		{"subrange", b, 1, 2, AllComps},
		{"masked", b, 0, 2, CompMask(1<<0 | 1<<2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := src.LinearCount(tt.region, tt.c0, tt.c1, tt.mask)
			buf := make([]int, n)
			if got := src.LinearOut(buf, tt.region, tt.c0, tt.c1, tt.mask); got != n {
				t.Fatalf("LinearOut wrote %d elements, want %d", got, n)
			}

			dst := NewArray(b, 3, WithFill(-1))
			if got := dst.LinearIn(buf, tt.region, tt.c0, tt.c1, tt.mask); got != n {
				t.Fatalf("LinearIn consumed %d elements, want %d", got, n)
			}
			for comp := 0; comp < 3; comp++ {
				for it := NewBoxIter(b); it.Ok(); it.Next() {
					c := it.Coord()
					want := -1
					if comp >= tt.c0 && comp <= tt.c1 &&
						tt.mask.Has(comp-tt.c0) && tt.region.Contains(c) {
						want = src.At(c, comp)
					}
					if got := dst.At(c, comp); got != want {
						t.Fatalf("dst.At(%v,%d) = %d, want %d", c, comp, got, want)
					}
				}
			}
		})
	}
}

func TestLinearCount(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(2, 2, 0))
	a := NewArray[float64](b, 4)
	if got := a.LinearCount(b, 0, 3, AllComps); got != 4*b.Size() {
		t.Errorf("LinearCount all = %d", got)
	}
	if got := a.LinearCount(b, 1, 2, CompMask(1<<0)); got != b.Size() {
		t.Errorf("LinearCount masked = %d", got)
	}
}

func TestLinearOutOrder(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(1, 1, 0))
	a := NewArray[int](b, 2)
	fillLinearField(a)

	buf := make([]int, a.LinearCount(b, 0, 1, AllComps))
	a.LinearOut(buf, b, 0, 1, AllComps)

	// Component-major, cells in canonical traversal order within each.
	want := []int{0, 100, 10, 110, 1000, 1100, 1010, 1110}
	if diff := cmp.Diff(want, buf); diff != "" {
		t.Errorf("unexpected serialization order (-want +got):\n%s", diff)
	}
}

func TestMaskedRangeWidthLimit(t *testing.T) {
	box := NewBox(MakeCoord(0, 0, 0), MakeCoord(1, 0, 0))
	a := NewArray[float64](box, maskBits+8)
	b := NewArray[float64](box, maskBits+8)
	buf := make([]float64, a.Size())

	trips := func(f func()) (panicked bool) {
		defer func() { panicked = recover() != nil }()
		f()
		return
	}
	if !trips(func() { a.LinearOut(buf, box, 0, a.NComp()-1, AllComps) }) {
		t.Error("LinearOut accepted a component range wider than the mask")
	}
	if !trips(func() { a.LinearIn(buf, box, 0, a.NComp()-1, AllComps) }) {
		t.Error("LinearIn accepted a component range wider than the mask")
	}
	if !trips(func() { a.Copy(box, 0, b, box, 0, a.NComp(), AllComps) }) {
		t.Error("Copy accepted a component range wider than the mask")
	}
}
