package boot

const (
	// stackTop is the initial stack top handed to the kernel. The loader
	// reserves the region below it; 16-byte alignment is an ABI requirement.
	stackTop = 0x80000

	// pageTableBase is the physical address of the three consecutive frames
	// reserved for the boot page tables.
	pageTableBase = uintptr(0x2000)
)
