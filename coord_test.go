//go:build !gridbox2d

package gridbox

import "testing"

func TestMakeCoord(t *testing.T) {
	c := MakeCoord(1, 2, 3)
	if c != (Coord{1, 2, 3}) {
		t.Errorf("MakeCoord(1,2,3) = %v", c)
	}
}

func TestCoordArithmetic(t *testing.T) {
	a := MakeCoord(1, 2, 3)
	b := MakeCoord(4, 6, 8)

	if got := a.Add(b); got != MakeCoord(5, 8, 11) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != MakeCoord(3, 4, 5) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Neg(); got != MakeCoord(-1, -2, -3) {
		t.Errorf("Neg = %v", got)
	}
	if got := a.AddScalar(2); got != MakeCoord(3, 4, 5) {
		t.Errorf("AddScalar = %v", got)
	}
	if got := a.SubScalar(1); got != MakeCoord(0, 1, 2) {
		t.Errorf("SubScalar = %v", got)
	}
	if got := a.Min(MakeCoord(2, 1, 5)); got != MakeCoord(1, 1, 3) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(MakeCoord(2, 1, 5)); got != MakeCoord(2, 2, 5) {
		t.Errorf("Max = %v", got)
	}
}

func TestCoordReductions(t *testing.T) {
	c := MakeCoord(2, -3, 4)
	if got := c.Sum(); got != 3 {
		t.Errorf("Sum = %d, want 3", got)
	}
	if got := c.Product(); got != -24 {
		t.Errorf("Product = %d, want -24", got)
	}
	if got := c.Norm1(); got != 9 {
		t.Errorf("Norm1 = %d, want 9", got)
	}
}

func TestCoordComparisons(t *testing.T) {
	a := MakeCoord(1, 2, 3)
	if !a.AllLE(a) {
		t.Error("AllLE should hold for equal coords")
	}
	if a.AllLT(a) {
		t.Error("AllLT should fail for equal coords")
	}
	if !a.AllLT(MakeCoord(2, 3, 4)) {
		t.Error("AllLT should hold for a strictly larger coord")
	}
	if a.AllLE(MakeCoord(2, 1, 4)) {
		t.Error("AllLE should fail when one component is smaller")
	}
}
