package addrmap

// AddressMapping provides typed accessors over an AddressSlicer and the
// collision predicate used throughout hazard detection and scheduling.
type AddressMapping struct {
	slicer *AddressSlicer
}

// NewMapping wraps slicer with the named field accessors.
func NewMapping(slicer *AddressSlicer) *AddressMapping {
	return &AddressMapping{slicer: slicer}
}

// Slicer exposes the underlying AddressSlicer for callers that need the
// raw slicer (e.g. the controller reporting total capacity).
func (m *AddressMapping) Slicer() *AddressSlicer {
	return m.slicer
}

// Offset returns the within-line byte offset of address.
func (m *AddressMapping) Offset(address uint64) uint64 {
	return m.slicer.Extract(address, Offset)
}

// Channel returns the channel index of address.
func (m *AddressMapping) Channel(address uint64) uint64 {
	return m.slicer.Extract(address, Channel)
}

// Bank returns the bank index of address.
func (m *AddressMapping) Bank(address uint64) uint64 {
	return m.slicer.Extract(address, Bank)
}

// Rank returns the rank index of address.
func (m *AddressMapping) Rank(address uint64) uint64 {
	return m.slicer.Extract(address, Rank)
}

// Column returns the column index of address.
func (m *AddressMapping) Column(address uint64) uint64 {
	return m.slicer.Extract(address, Column)
}

// Row returns the row index of address.
func (m *AddressMapping) Row(address uint64) uint64 {
	return m.slicer.Extract(address, Row)
}

// BankIndex returns the flattened (rank, bank) index used to index a
// channel's BankState array.
func (m *AddressMapping) BankIndex(address uint64) uint64 {
	return m.Rank(address)*(uint64(1)<<m.slicer.Width(Bank)) + m.Bank(address)
}

// IsCollision reports whether a and b agree on every bit outside the
// OFFSET field, i.e. whether they map to the same (channel, rank, bank,
// row, column) tuple.
func (m *AddressMapping) IsCollision(a, b uint64) bool {
	offsetBits := m.slicer.widths[Offset]
	mask := ^(uint64(1)<<offsetBits - 1)

	return a&mask == b&mask
}
