package cpu

// Control register and XCR0 bits involved in extended-state setup.
const (
	CR0MP = 1 << 1 // monitor coprocessor
	CR0EM = 1 << 2 // emulate floating point

	CR4OSFXSR     = 1 << 9  // OS supports FXSAVE/FXRSTOR
	CR4OSXMMEXCPT = 1 << 10 // OS supports unmasked SIMD exceptions
	CR4OSXSAVE    = 1 << 18 // OS supports XSAVE/XRSTOR

	XCR0X87 = 1 << 0
	XCR0SSE = 1 << 1
	XCR0AVX = 1 << 2
)

var (
	readCR0Fn   = ReadCR0
	writeCR0Fn  = WriteCR0
	readCR4Fn   = ReadCR4
	writeCR4Fn  = WriteCR4
	writeXCR0Fn = WriteXCR0
)

// EnableExtendedState opts the OS into XSAVE state management. It is a
// no-op unless the captured feature snapshot reports XSAVE support. When it
// runs it clears floating-point emulation, enables OS support for the
// FXSAVE and SIMD exception machinery and selects the managed state
// components: x87/SSE always, AVX only when the snapshot reports it.
//
// EnableExtendedState never fails. Unsupported components simply stay
// disabled since they are optional.
func EnableExtendedState(feat Features) {
	if !feat.HasXSAVE() {
		return
	}

	cr0 := readCR0Fn()
	cr0 &^= CR0EM
	cr0 |= CR0MP
	writeCR0Fn(cr0)

	writeCR4Fn(readCR4Fn() | CR4OSFXSR | CR4OSXMMEXCPT | CR4OSXSAVE)

	xcr0 := uint64(XCR0X87 | XCR0SSE)
	if feat.HasAVX() {
		xcr0 |= XCR0AVX
	}
	writeXCR0Fn(xcr0)
}
