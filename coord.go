package gridbox

// Coord is an integer vector in the index space. It is a plain value type:
// copy it freely, compare it with ==.
type Coord [SpaceDim]int

// Predefined coordinates.
var (
	// ZeroCoord has every component 0.
	ZeroCoord = Coord{}

	// UnitCoord has every component 1.
	UnitCoord = unitCoord()
)

func unitCoord() Coord {
	var c Coord
	for d := range c {
		c[d] = 1
	}
	return c
}

// MakeCoord builds a Coord from exactly SpaceDim components.
func MakeCoord(v ...int) Coord {
	assert(len(v) == SpaceDim, "MakeCoord requires SpaceDim components")
	var c Coord
	copy(c[:], v)
	return c
}

// Add returns the componentwise sum c + o.
func (c Coord) Add(o Coord) Coord {
	for d := range c {
		c[d] += o[d]
	}
	return c
}

// Sub returns the componentwise difference c - o.
func (c Coord) Sub(o Coord) Coord {
	for d := range c {
		c[d] -= o[d]
	}
	return c
}

// AddScalar returns c with n added to every component.
func (c Coord) AddScalar(n int) Coord {
	for d := range c {
		c[d] += n
	}
	return c
}

// SubScalar returns c with n subtracted from every component.
func (c Coord) SubScalar(n int) Coord {
	for d := range c {
		c[d] -= n
	}
	return c
}

// Min returns the componentwise minimum of c and o.
func (c Coord) Min(o Coord) Coord {
	for d := range c {
		if o[d] < c[d] {
			c[d] = o[d]
		}
	}
	return c
}

// Max returns the componentwise maximum of c and o.
func (c Coord) Max(o Coord) Coord {
	for d := range c {
		if o[d] > c[d] {
			c[d] = o[d]
		}
	}
	return c
}

// Neg returns the componentwise negation of c.
func (c Coord) Neg() Coord {
	for d := range c {
		c[d] = -c[d]
	}
	return c
}

// Norm1 returns the sum of the absolute values of the components.
func (c Coord) Norm1() int {
	n := 0
	for d := range c {
		if c[d] < 0 {
			n -= c[d]
		} else {
			n += c[d]
		}
	}
	return n
}

// Sum returns the sum of the components.
func (c Coord) Sum() int {
	n := 0
	for d := range c {
		n += c[d]
	}
	return n
}

// Product returns the product of the components.
func (c Coord) Product() int {
	n := 1
	for d := range c {
		n *= c[d]
	}
	return n
}

// AllLE reports whether c is dominated by o: c[d] <= o[d] in every dimension.
// Note that !c.AllLE(o) does not imply o.AllLE(c); the ordering is partial.
func (c Coord) AllLE(o Coord) bool {
	for d := range c {
		if c[d] > o[d] {
			return false
		}
	}
	return true
}

// AllLT reports whether c[d] < o[d] in every dimension.
func (c Coord) AllLT(o Coord) bool {
	for d := range c {
		if c[d] >= o[d] {
			return false
		}
	}
	return true
}
