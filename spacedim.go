//go:build !gridbox2d

package gridbox

// SpaceDim is the number of spatial dimensions, fixed at build time and
// shared by every type in the module. Build with the gridbox2d tag for a
// two-dimensional library.
const SpaceDim = 3
