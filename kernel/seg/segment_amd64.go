package seg

import (
	"unsafe"

	"github.com/ionicmc-rs/ion-os/kernel/bootinfo"
	"github.com/ionicmc-rs/ion-os/kernel/cpu"
)

// Selectors into the boot descriptor table.
const (
	// SelectorNull is the mandatory null selector. In 64-bit mode the data
	// segment registers are reloaded with it: their bases are ignored but
	// the registers must hold something valid.
	SelectorNull uint16 = 0

	// SelectorKernelCode selects the single 64-bit code descriptor.
	SelectorKernelCode uint16 = 0x08
)

// kernelCodeFlags describes a present, ring-0, executable long-mode code
// descriptor: access byte 0x9A with the L and G bits in the upper nibble.
const kernelCodeFlags uint16 = 0xA09A

// Entry packs a segment descriptor from its flags word, base and limit.
// The flags word carries the access byte in its low byte and the
// granularity/L/DB/AVL nibble in bits 12-15, matching the descriptor's own
// scattered bit layout.
func Entry(flags uint16, base, limit uint32) uint64 {
	return (uint64(base)&0xFF000000)<<(56-24) |
		(uint64(flags)&0x0000F0FF)<<40 |
		(uint64(limit)&0x000F0000)<<(48-16) |
		(uint64(base)&0x00FFFFFF)<<16 |
		(uint64(limit) & 0x0000FFFF)
}

// Descriptor field accessors, used to verify packed entries.

func entryBase(entry uint64) uint64 {
	return ((entry & 0xFF00000000000000) >> 32) |
		((entry & 0x000000FF00000000) >> 16) |
		((entry & 0x00000000FFFF0000) >> 16)
}

func entryLimit(entry uint64) uint32 {
	return uint32(((entry & 0x000F000000000000) >> 32) | (entry & 0x000000000000FFFF))
}

func entryPresent(entry uint64) bool {
	return entry&0x0000800000000000 != 0
}

func entryDPL(entry uint64) uint8 {
	return uint8((entry & 0x0000600000000000) >> 45)
}

func entryLong(entry uint64) bool {
	return entry&0x0020000000000000 != 0
}

func entryType(entry uint64) uint8 {
	return uint8((entry & 0x00000F0000000000) >> 40)
}

// bootGDT is the minimal descriptor table needed for the mode switch: the
// mandatory null descriptor plus a single 64-bit kernel code descriptor.
// It must stay in a package variable; the CPU keeps walking the table after
// LoadGDT returns.
var bootGDT = [2]uint64{
	0,
	Entry(kernelCodeFlags, 0, 0xFFFFF),
}

// Pointer is the 10-byte {limit:16, base:64} operand consumed by the
// table-pointer load. The layout is packed, so it is kept as raw bytes
// rather than a struct.
type Pointer [10]byte

// NewPointer builds the load operand for a table of the given entry count
// at base. The encoded limit is the table size minus one, per the
// architecture.
func NewPointer(base uint64, entries int) Pointer {
	var p Pointer

	limit := uint16(entries*8 - 1)
	p[0] = byte(limit)
	p[1] = byte(limit >> 8)
	for i := 0; i < 8; i++ {
		p[2+i] = byte(base >> (8 * uint(i)))
	}
	return p
}

var (
	// gdtPointer must outlive the LoadGDT call below, so it lives here
	// rather than on the stack.
	gdtPointer Pointer

	loadGDTFn         = cpu.LoadGDT
	setDataSegmentsFn = cpu.SetDataSegments
)

// Install loads the boot descriptor table into the processor's
// table-pointer register. The far transfer through SelectorKernelCode that
// activates the new code descriptor is performed by the rt0 trampoline;
// once it lands in the 64-bit entry point, Handoff finishes the job.
func Install() {
	gdtPointer = NewPointer(uint64(uintptr(unsafe.Pointer(&bootGDT[0]))), len(bootGDT))
	loadGDTFn(uintptr(unsafe.Pointer(&gdtPointer)))
}

// Handoff is the second-stage entry running in the 64-bit context. It
// re-establishes segment state by reloading the data segment registers
// with the null selector, finalizes the record with the kernel entry
// address (this is the only place KernelEntry is written; earlier stages
// leave it zero) and transfers control into the boot-info validator,
// passing the record by address.
func Handoff(rec *bootinfo.Info, entry func(*bootinfo.ValidatedInfo)) {
	setDataSegmentsFn(SelectorNull)

	rec.KernelEntry = FuncAddr(entry)
	bootinfo.ForwardToKernel(rec, entry)
}

// FuncAddr returns the entry PC of fn by reading it out of the funcval.
func FuncAddr(fn func(*bootinfo.ValidatedInfo)) uint64 {
	return uint64(**(**uintptr)(unsafe.Pointer(&fn)))
}
