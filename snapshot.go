package gridbox

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"

	"github.com/DataDog/zstd"
)

// snapshotLevel balances compression ratio against speed for grid data.
const snapshotLevel = 3

// WriteSnapshot serializes the components [startComp, endComp] of the Array
// over region, compresses the payload with zstd, and writes it to w. The
// frame is self-describing: ReadSnapshot recovers it without knowing the
// element count in advance.
func (a *Array[T]) WriteSnapshot(w io.Writer, region Box, startComp, endComp int) error {
	n := a.LinearCount(region, startComp, endComp, AllComps)
	buf := make([]T, n)
	a.LinearOut(buf, region, startComp, endComp, AllComps)

	var zero T
	var raw []byte
	if n > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), n*int(unsafe.Sizeof(zero)))
	}
	packed, err := zstd.CompressLevel(nil, raw, snapshotLevel)
	if err != nil {
		return fmt.Errorf("gridbox: snapshot compress: %w", err)
	}

	var hdr [16]byte
	binary.LittleEndian.PutUint64(hdr[0:], uint64(len(raw)))
	binary.LittleEndian.PutUint64(hdr[8:], uint64(len(packed)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("gridbox: snapshot header: %w", err)
	}
	if _, err := w.Write(packed); err != nil {
		return fmt.Errorf("gridbox: snapshot payload: %w", err)
	}
	return nil
}

// ReadSnapshot reads a frame written by WriteSnapshot from r and scatters it
// into the components [startComp, endComp] of the Array over region. The
// region and component range must match the ones the frame was written with.
func (a *Array[T]) ReadSnapshot(r io.Reader, region Box, startComp, endComp int) error {
	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("gridbox: snapshot header: %w", err)
	}
	rawLen := binary.LittleEndian.Uint64(hdr[0:])
	packedLen := binary.LittleEndian.Uint64(hdr[8:])

	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	n := a.LinearCount(region, startComp, endComp, AllComps)
	if rawLen != uint64(n)*elemSize {
		return fmt.Errorf("gridbox: snapshot size mismatch: frame holds %d bytes, region needs %d",
			rawLen, uint64(n)*elemSize)
	}

	packed := make([]byte, packedLen)
	if _, err := io.ReadFull(r, packed); err != nil {
		return fmt.Errorf("gridbox: snapshot payload: %w", err)
	}
	if n == 0 {
		return nil
	}
	raw, err := zstd.Decompress(make([]byte, 0, rawLen), packed)
	if err != nil {
		return fmt.Errorf("gridbox: snapshot decompress: %w", err)
	}
	if uint64(len(raw)) != rawLen {
		return fmt.Errorf("gridbox: snapshot decompress: got %d bytes, want %d", len(raw), rawLen)
	}

	buf := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
	a.LinearIn(buf, region, startComp, endComp, AllComps)
	return nil
}
