package cpu

var (
	cpuidFn       = ID
	idSupportedFn = IDSupported
)

// IDSupported reports whether the CPUID instruction is usable at all. It
// attempts to toggle the ID bit (bit 21) of the flags register; processors
// without CPUID keep the bit fixed so the toggle does not persist.
func IDSupported() bool

// ID returns information about the CPU and its features. It is implemented
// as a CPUID instruction with EAX=leaf, ECX=subleaf and returns the values
// in EAX, EBX, ECX and EDX.
func ID(leaf, subleaf uint32) (uint32, uint32, uint32, uint32)

// Halt stops instruction execution and never returns.
func Halt()

// ReadCR0 returns the value of the CR0 control register.
func ReadCR0() uint64

// WriteCR0 replaces the value of the CR0 control register.
func WriteCR0(val uint64)

// ReadCR3 returns the physical address of the active top-level page table.
func ReadCR3() uint64

// WriteCR3 loads the paging root register with the physical address of a
// top-level page table.
func WriteCR3(val uint64)

// ReadCR4 returns the value of the CR4 control register.
func ReadCR4() uint64

// WriteCR4 replaces the value of the CR4 control register.
func WriteCR4(val uint64)

// ReadMSR returns the value of the given model-specific register.
func ReadMSR(msr uint32) uint64

// WriteMSR replaces the value of the given model-specific register.
func WriteMSR(msr uint32, val uint64)

// WriteXCR0 sets extended control register 0, selecting the state
// components managed by the XSAVE family of instructions.
func WriteXCR0(val uint64)

// LoadGDT makes the CPU use the descriptor table described by the 10-byte
// {limit, base} operand at base.
func LoadGDT(base uintptr)

// SetDataSegments reloads the DS, ES, FS, GS and SS registers with the
// supplied selector.
func SetDataSegments(sel uint16)

// FlushTLBEntry flushes the TLB entry for a particular virtual address.
func FlushTLBEntry(virtAddr uintptr)

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8
