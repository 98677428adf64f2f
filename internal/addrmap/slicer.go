package addrmap

import "fmt"

// lineSizeBytes is the cache line granularity that must evenly divide a
// channel's transfer size (width times prefetch size). It mirrors the upstream cache hierarchy's
// fixed block size, which is a build-time constant rather than a
// controller configuration knob.
const lineSizeBytes = 64

// log2 returns the base-2 logarithm of n, which must be a power of two.
func log2(n uint64) uint {
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("addrmap: %d is not a power of two", n))
	}

	var bits uint
	for n > 1 {
		n >>= 1
		bits++
	}

	return bits
}

// AddressSlicer cuts an address into the ordered, contiguous bit fields
// OFFSET, CHANNEL, BANK, RANK, COLUMN, ROW, least-significant first.
type AddressSlicer struct {
	widths [numFields]uint
	shifts [numFields]uint
}

// NewSlicer builds an AddressSlicer from the channel's transfer width, the
// prefetch size, and the topology counts. It panics if prefetchSize is
// zero, if the transfer size (width times prefetch size) is not a
// multiple of the upstream cache line size, or if any non-offset, non-column topology size is not a power of
// two.
func NewSlicer(
	channelWidthBytes, prefetchSize, channels, banks, columns, ranks, rows uint64,
) *AddressSlicer {
	if prefetchSize == 0 {
		panic("addrmap: prefetch size must not be 0")
	}

	if (channelWidthBytes*prefetchSize)%lineSizeBytes != 0 {
		panic("addrmap: channel width times prefetch size must be a multiple of the line size")
	}

	s := &AddressSlicer{}
	s.widths[Offset] = log2(channelWidthBytes * prefetchSize)
	s.widths[Channel] = log2(channels)
	s.widths[Bank] = log2(banks)
	s.widths[Rank] = log2(ranks)
	s.widths[Column] = log2(columns / prefetchSize)
	s.widths[Row] = log2(rows)

	var shift uint
	for f := Field(0); f < numFields; f++ {
		s.shifts[f] = shift
		shift += s.widths[f]
	}

	return s
}

// TotalBits returns the number of address bits this slicer covers.
func (s *AddressSlicer) TotalBits() uint {
	var total uint
	for _, w := range s.widths {
		total += w
	}

	return total
}

// TotalSizeBytes returns the addressable span covered by this slicer.
func (s *AddressSlicer) TotalSizeBytes() uint64 {
	return uint64(1) << s.TotalBits()
}

// Width returns the bit width of the given field.
func (s *AddressSlicer) Width(f Field) uint {
	return s.widths[f]
}

// Extract returns the value of field f within address.
func (s *AddressSlicer) Extract(address uint64, f Field) uint64 {
	mask := uint64(1)<<s.widths[f] - 1
	return (address >> s.shifts[f]) & mask
}
