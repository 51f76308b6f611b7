//go:build !gridbox2d

package gridbox

import (
	"testing"
	"unsafe"
)

func TestArrayDefine(t *testing.T) {
	b := NewBox(MakeCoord(-1, 0, 1), MakeCoord(2, 3, 2))
	a := NewArray[float64](b, 2)
	if !a.Defined() {
		t.Fatal("array should be defined after NewArray")
	}
	if a.Box() != b {
		t.Errorf("Box = %v, want %v", a.Box(), b)
	}
	if a.NComp() != 2 {
		t.Errorf("NComp = %d", a.NComp())
	}
	if got, want := a.Size(), 2*b.Size(); got != want {
		t.Errorf("Size = %d, want %d", got, want)
	}
	if got, want := a.SizeBytes(), uintptr(a.Size())*unsafe.Sizeof(float64(0)); got != want {
		t.Errorf("SizeBytes = %d, want %d", got, want)
	}
}

func TestArrayAtSet(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(2, 2, 0))
	a := NewArray[int](b, 2)
	for it := NewBoxIter(b); it.Ok(); it.Next() {
		c := it.Coord()
		a.Set(c, 0, 10*c[0]+c[1])
		a.Set(c, 1, -(10*c[0] + c[1]))
	}
	for it := NewBoxIter(b); it.Ok(); it.Next() {
		c := it.Coord()
		if got := a.At(c, 0); got != 10*c[0]+c[1] {
			t.Fatalf("At(%v,0) = %d", c, got)
		}
		if got := a.At(c, 1); got != -(10*c[0] + c[1]) {
			t.Fatalf("At(%v,1) = %d", c, got)
		}
	}
	*a.Ref(MakeCoord(1, 1, 0), 0) = 99
	if got := a.At(MakeCoord(1, 1, 0), 0); got != 99 {
		t.Errorf("write through Ref not visible, got %d", got)
	}
}

func TestArrayIndexContiguity(t *testing.T) {
	b := NewBox(MakeCoord(-2, 1, 0), MakeCoord(2, 4, 3))
	a := NewArray[byte](b, 1)
	prev := -1
	for it := NewBoxIter(b); it.Ok(); it.Next() {
		idx := a.Index(it.Coord())
		if idx != prev+1 {
			t.Fatalf("Index(%v) = %d, want %d", it.Coord(), idx, prev+1)
		}
		prev = idx
	}
	if prev != b.Size()-1 {
		t.Errorf("last index = %d, want %d", prev, b.Size()-1)
	}
}

func TestArrayFill(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(1, 1, 1))
	a := NewArray(b, 2, WithFill(7.0))
	if got := a.At(MakeCoord(1, 0, 1), 1); got != 7.0 {
		t.Errorf("WithFill value = %v", got)
	}
	a.Fill(0, 3.0)
	if got := a.At(MakeCoord(0, 0, 0), 0); got != 3.0 {
		t.Errorf("Fill comp 0 = %v", got)
	}
	if got := a.At(MakeCoord(0, 0, 0), 1); got != 7.0 {
		t.Errorf("Fill touched comp 1, got %v", got)
	}
	a.FillAll(0)
	if got := a.At(MakeCoord(1, 1, 1), 1); got != 0 {
		t.Errorf("FillAll = %v", got)
	}
}

func TestArrayAlias(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(1, 1, 0))
	buf := make([]int, b.Size())
	a := NewArray(b, 1, WithAlias(buf))
	a.Set(MakeCoord(1, 1, 0), 0, 42)
	if buf[a.Index(MakeCoord(1, 1, 0))] != 42 {
		t.Error("write did not land in the aliased buffer")
	}
}

func TestArrayCopyOffset(t *testing.T) {
	srcBox := NewBox(MakeCoord(0, 0, 0), MakeCoord(4, 4, 0))
	src := NewArray[int](srcBox, 2)
	for it := NewBoxIter(srcBox); it.Ok(); it.Next() {
		c := it.Coord()
		src.Set(c, 0, 100*c[0]+c[1])
		src.Set(c, 1, 7)
	}

	dstBox := NewBox(MakeCoord(10, 10, 0), MakeCoord(14, 14, 0))
	dst := NewArray[int](dstBox, 2)
	srcSub := NewBox(MakeCoord(1, 1, 0), MakeCoord(3, 3, 0))
	dstSub := NewBox(MakeCoord(11, 12, 0), MakeCoord(13, 14, 0))

	dst.Copy(dstSub, 0, src, srcSub, 0, 2, AllComps)

	shift := srcSub.Lo().Sub(dstSub.Lo())
	for it := NewBoxIter(dstSub); it.Ok(); it.Next() {
		c := it.Coord()
		if got, want := dst.At(c, 0), src.At(c.Add(shift), 0); got != want {
			t.Fatalf("dst.At(%v,0) = %d, want %d", c, got, want)
		}
		if got := dst.At(c, 1); got != 7 {
			t.Fatalf("dst.At(%v,1) = %d, want 7", c, got)
		}
	}
}

func TestArrayCopyMask(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(2, 2, 0))
	src := NewArray(b, 2, WithFill(5))
	dst := NewArray(b, 2, WithFill(-1))

	// Only component bit 1 of the range is unmasked.
	dst.Copy(b, 0, src, b, 0, 2, CompMask(1<<1))

	c := MakeCoord(1, 1, 0)
	if got := dst.At(c, 0); got != -1 {
		t.Errorf("masked component overwritten: %d", got)
	}
	if got := dst.At(c, 1); got != 5 {
		t.Errorf("unmasked component not copied: %d", got)
	}
}

func TestArrayCopyRegion(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(3, 3, 0))
	src := NewArray(b, 1, WithFill(9))
	dst := NewArray[int](b, 1)
	region := NewBox(MakeCoord(1, 1, 0), MakeCoord(2, 2, 0))
	dst.CopyRegion(region, src)
	if got := dst.At(MakeCoord(1, 2, 0), 0); got != 9 {
		t.Errorf("region cell not copied: %d", got)
	}
	if got := dst.At(MakeCoord(0, 0, 0), 0); got != 0 {
		t.Errorf("cell outside region touched: %d", got)
	}
}

func TestArrayRelease(t *testing.T) {
	b := NewBox(MakeCoord(0, 0, 0), MakeCoord(1, 1, 1))
	a := NewArray[float32](b, 1)
	a.Release()
	if a.Defined() {
		t.Error("array should be undefined after Release")
	}
}
