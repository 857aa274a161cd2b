package vmm

// PageTableEntryFlag describes a flag that can be applied to a page table
// entry.
type PageTableEntryFlag uint64

// The set of entry attributes used by the boot identity map.
const (
	// FlagPresent marks the entry as reachable by a page-table walk.
	FlagPresent PageTableEntryFlag = 1 << 0

	// FlagRW marks the mapped region as writable.
	FlagRW PageTableEntryFlag = 1 << 1

	// FlagPageSize turns a page directory entry into a 2 MiB leaf mapping.
	FlagPageSize PageTableEntryFlag = 1 << 7
)

// ptePhysPageMask selects the physical address bits of an entry.
const ptePhysPageMask = uint64(0x000ffffffffff000)

// PageTableEntry encodes a physical address and a set of attribute flags.
type PageTableEntry uint64

// HasFlags returns true if this entry has all the input flags set.
func (pte PageTableEntry) HasFlags(flags PageTableEntryFlag) bool {
	return (uint64(pte) & uint64(flags)) == uint64(flags)
}

// SetFlags sets the input list of flags on the page table entry.
func (pte *PageTableEntry) SetFlags(flags PageTableEntryFlag) {
	*pte = PageTableEntry(uint64(*pte) | uint64(flags))
}

// ClearFlags unsets the input list of flags from the page table entry.
func (pte *PageTableEntry) ClearFlags(flags PageTableEntryFlag) {
	*pte = PageTableEntry(uint64(*pte) &^ uint64(flags))
}

// Address returns the physical address this entry points to.
func (pte PageTableEntry) Address() uint64 {
	return uint64(pte) & ptePhysPageMask
}

// SetAddress updates the entry to point to the given physical address,
// preserving the attribute bits.
func (pte *PageTableEntry) SetAddress(addr uint64) {
	*pte = PageTableEntry((uint64(*pte) &^ ptePhysPageMask) | (addr & ptePhysPageMask))
}
