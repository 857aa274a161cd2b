package bootinfo

import (
	"github.com/ionicmc-rs/ion-os/kernel/cpu"
	"github.com/ionicmc-rs/ion-os/kernel/driver/video/console"
	"github.com/ionicmc-rs/ion-os/kernel/hal"
)

// Code classifies the first structural-validation failure found in a
// record. The values are part of the contract with the kernel proper.
type Code uint32

const (
	// CodeOK means the record passed every check.
	CodeOK Code = 0

	// CodeFieldInvalid means a required field is zero or misaligned.
	CodeFieldInvalid Code = 2

	// CodeMagicMismatch means the loader-reported magic is not the
	// Multiboot2 constant.
	CodeMagicMismatch Code = 7
)

// ValidatedInfo is the read-only view handed to the kernel entry point: the
// record address plus the validation verdict. It never copies or repairs
// the record; it only attaches a verdict.
type ValidatedInfo struct {
	Info  *Info
	Valid bool
}

// haltOnInvalid gates the accept/reject policy for structurally invalid
// records. The boot core forwards invalid records with Valid=false and
// leaves the policy decision to the kernel, which may tolerate some
// malformed fields (a missing framebuffer, say) and not others. Flipping
// this makes validation fatal instead.
const haltOnInvalid = false

var (
	cpuHaltFn = cpu.Halt

	// validatedView is the single view instance handed to the kernel. A
	// package-level variable keeps the forward path allocation-free.
	validatedView ValidatedInfo
)

// Validate checks the record for structural sanity. The checks run in a
// fixed order and the first failure determines the reported code; checks
// are not cumulative. Validate has no side effects and yields the same
// verdict for the same record every time.
func Validate(info *Info) (Code, bool) {
	if info.MultibootMagic != MultibootMagic {
		return CodeMagicMismatch, false
	}
	if info.PageTableBase == 0 || info.PageTableBase&0xFFF != 0 {
		return CodeFieldInvalid, false
	}
	if info.StackTop == 0 || info.StackTop&0xF != 0 {
		return CodeFieldInvalid, false
	}
	if info.KernelEntry == 0 {
		return CodeFieldInvalid, false
	}
	if info.FramebufferAddr == 0 {
		return CodeFieldInvalid, false
	}
	if info.MemoryMapAddr == 0 {
		return CodeFieldInvalid, false
	}
	return CodeOK, true
}

// ForwardToKernel validates the record and calls the kernel entry point
// with the validated view. The call happens regardless of the verdict (see
// haltOnInvalid); validation here is advisory.
//
// Before the handoff a liveness breadcrumb lands at the top-left of the
// display: "OK" followed by the two low nibbles of the reported magic.
// These cells are purely diagnostic and not part of the data contract.
func ForwardToKernel(info *Info, entry func(*ValidatedInfo)) {
	hal.EarlyConsole.Write('O', console.LightGrey, 0, 0)
	hal.EarlyConsole.Write('K', console.LightGrey, 1, 0)
	hal.EarlyConsole.Write('0'+byte(info.MultibootMagic&0xF), console.LightGrey, 2, 0)
	hal.EarlyConsole.Write('0'+byte((info.MultibootMagic>>4)&0xF), console.LightGrey, 3, 0)

	_, valid := Validate(info)
	if haltOnInvalid && !valid {
		cpuHaltFn()
	}

	validatedView.Info = info
	validatedView.Valid = valid
	entry(&validatedView)
}
