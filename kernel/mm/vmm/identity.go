package vmm

import (
	"unsafe"

	"github.com/ionicmc-rs/ion-os/kernel"
	"github.com/ionicmc-rs/ion-os/kernel/mm"
)

// tableEntryCount is the number of entries in each paging structure.
const tableEntryCount = 512

var (
	// ErrTableAlignment is returned when the region reserved for the boot
	// page tables is missing or does not satisfy the 4 KiB alignment the
	// hardware requires of paging structures.
	ErrTableAlignment = &kernel.Error{Module: "vmm", Message: "page table region is zero or not 4 KiB aligned"}
)

// PageTable is a single 4 KiB paging structure of 512 64-bit entries.
type PageTable [tableEntryCount]PageTableEntry

// BootPageTables overlays the three pre-reserved physical frames that hold
// the boot identity map: the top-level table (PML4), the page directory
// pointer table and a single page directory whose entries map 2 MiB each.
type BootPageTables struct {
	pml4 *PageTable
	pdpt *PageTable
	pd   *PageTable

	base uintptr
}

// OverlayBootPageTables overlays three consecutive 4 KiB frames starting at
// base. The frames are not modified until BuildIdentityMap runs.
func OverlayBootPageTables(base uintptr) (BootPageTables, *kernel.Error) {
	if base == 0 || base&(mm.PageSize-1) != 0 {
		return BootPageTables{}, ErrTableAlignment
	}

	return BootPageTables{
		pml4: (*PageTable)(unsafe.Pointer(base)),
		pdpt: (*PageTable)(unsafe.Pointer(base + mm.PageSize)),
		pd:   (*PageTable)(unsafe.Pointer(base + 2*mm.PageSize)),
		base: base,
	}, nil
}

// BuildIdentityMap populates the boot page tables with an identity mapping
// of the first GiB of physical memory using 2 MiB pages: entry i of the
// page directory maps physical address i << 21. All three tables are zeroed
// first so no stale entry is reachable by a page-table walk, then the two
// upper levels are linked with present+writable attributes and every leaf
// additionally carries the large-page attribute.
//
// It returns the physical address of the top-level table, ready to be
// loaded into the paging root register. The routine is not interruptible
// and has no partial-failure path; it must complete before the
// mode-transition sequence runs.
func (t BootPageTables) BuildIdentityMap() uint64 {
	for i := 0; i < tableEntryCount; i++ {
		t.pml4[i] = 0
		t.pdpt[i] = 0
		t.pd[i] = 0
	}

	t.pml4[0].SetAddress(uint64(t.base) + uint64(mm.PageSize))
	t.pml4[0].SetFlags(FlagPresent | FlagRW)

	t.pdpt[0].SetAddress(uint64(t.base) + 2*uint64(mm.PageSize))
	t.pdpt[0].SetFlags(FlagPresent | FlagRW)

	for i := 0; i < tableEntryCount; i++ {
		t.pd[i].SetAddress(uint64(i) << mm.LargePageShift)
		t.pd[i].SetFlags(FlagPresent | FlagRW | FlagPageSize)
	}

	return uint64(t.base)
}
