package bootinfo

import "unsafe"

// MultibootMagic is the value a Multiboot2-compliant loader reports in EAX
// at handoff.
const MultibootMagic = 0x36d76289

// Sizes of the wire layout. The record occupies InfoSize bytes; the boot
// core only ever consumes the first InfoUsedSize of them.
const (
	InfoSize     = 0x40
	InfoUsedSize = 0x38
)

// Info is the boot information record threaded through every bring-up
// stage. Its layout is a wire contract shared between the 32-bit stage, the
// 64-bit stage and the kernel proper: fields sit at fixed little-endian
// byte offsets and must not be reordered.
//
// The record is a single process-wide mutable object. It is built field by
// field by the first stage, exclusively owned by whichever stage is
// currently executing, and handed to each subsequent stage by address,
// never copied. KernelEntry is only finalized by the 64-bit handoff stage.
type Info struct {
	MultibootMagic uint32 // 0x00: loader-reported protocol magic
	MultibootInfo  uint32 // 0x04: physical address of the loader info blob
	CPUIDEDX       uint32 // 0x08: feature bitmask, leaf 1, EDX
	CPUIDECX       uint32 // 0x0C: feature bitmask, leaf 1, ECX

	PageTableBase   uint64 // 0x10: physical address of the top-level page table
	StackTop        uint64 // 0x18: initial stack top
	FramebufferAddr uint64 // 0x20: physical framebuffer address, 0 if unknown
	MemoryMapAddr   uint64 // 0x28: first memory-map entry, 0 if unknown
	KernelEntry     uint64 // 0x30: address of the native entry function

	// BootEntry is wire space reserved for a second entry point. The boot
	// core never reads or writes it.
	BootEntry uint64 // 0x38
}

// InfoFromAddr overlays a record on the given physical address. It is used
// by stages that receive the record by address rather than by pointer.
func InfoFromAddr(addr uintptr) *Info {
	return (*Info)(unsafe.Pointer(addr))
}
