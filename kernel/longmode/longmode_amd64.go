package longmode

import "github.com/ionicmc-rs/ion-os/kernel/cpu"

// Architectural bit positions involved in the long-mode switch.
const (
	// CR4PAE enables extended physical addressing.
	CR4PAE = 1 << 5

	// CR0PG enables paging.
	CR0PG = 1 << 31

	// MSREFER is the extended feature enable register.
	MSREFER = 0xC0000080

	// EFERLME is the long-mode-enable bit in EFER.
	EFERLME = 1 << 8
)

var (
	// The register accessors are mocked by tests so the write sequence can
	// be verified against a simulated backend; touching the real registers
	// from user mode would fault.
	readCR0Fn  = cpu.ReadCR0
	writeCR0Fn = cpu.WriteCR0
	writeCR3Fn = cpu.WriteCR3
	readCR4Fn  = cpu.ReadCR4
	writeCR4Fn = cpu.WriteCR4
	readMSRFn  = cpu.ReadMSR
	writeMSRFn = cpu.WriteMSR
)

// Enter switches the CPU from 32-bit protected mode to long mode. The four
// register writes happen in the one architecturally legal order: extended
// physical addressing first, then the page-table root, then the
// long-mode-enable bit, and paging strictly last. Enabling paging before
// the root is loaded or before long mode is enabled produces undefined
// translation behavior, so the sequence below must not be reordered.
//
// Enter performs no validation of its own; it assumes the capability checks
// passed and that pageTableBase points at a fully built identity map. A
// sequencing mistake here is not detectable by software.
func Enter(pageTableBase uint64) {
	writeCR4Fn(readCR4Fn() | CR4PAE)

	writeCR3Fn(pageTableBase)

	writeMSRFn(MSREFER, readMSRFn(MSREFER)|EFERLME)

	writeCR0Fn(readCR0Fn() | CR0PG)
}
