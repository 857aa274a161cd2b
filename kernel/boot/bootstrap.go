package boot

import (
	"github.com/ionicmc-rs/ion-os/kernel"
	"github.com/ionicmc-rs/ion-os/kernel/bootinfo"
	"github.com/ionicmc-rs/ion-os/kernel/cpu"
	"github.com/ionicmc-rs/ion-os/kernel/driver/debugport"
	"github.com/ionicmc-rs/ion-os/kernel/hal"
	"github.com/ionicmc-rs/ion-os/kernel/longmode"
	"github.com/ionicmc-rs/ion-os/kernel/mm/vmm"
	"github.com/ionicmc-rs/ion-os/kernel/multiboot"
	"github.com/ionicmc-rs/ion-os/kernel/seg"
)

// Stage identifies how far the bring-up sequence has progressed. Stages
// advance strictly forward; on failure the machine jumps to StageHalted and
// stays there.
type Stage uint8

const (
	// StageStart is the state at loader handoff.
	StageStart Stage = iota

	// StageMagicChecked means the loader-reported magic matched.
	StageMagicChecked

	// StageMemoryMapChecked means the tag scan produced a memory map.
	StageMemoryMapChecked

	// StageCapabilityChecked means the CPUID feature snapshot was captured.
	StageCapabilityChecked

	// StageLongModeChecked means 64-bit long mode is available.
	StageLongModeChecked

	// StageExtendedStateHandled means XSAVE setup ran (or was skipped on a
	// CPU without it).
	StageExtendedStateHandled

	// StagePagingBuilt means the boot identity map is fully populated.
	StagePagingBuilt

	// StagePagingEnabled means the mode-transition register sequence ran.
	StagePagingEnabled

	// StageTableLoaded means the boot descriptor table is installed.
	StageTableLoaded

	// StageTransferred means control moved to the 64-bit handoff stage.
	StageTransferred

	// StageHalted means an unrecoverable failure stopped the sequence.
	StageHalted
)

// String implements fmt.Stringer for Stage.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageMagicChecked:
		return "magic-checked"
	case StageMemoryMapChecked:
		return "memory-map-checked"
	case StageCapabilityChecked:
		return "capability-checked"
	case StageLongModeChecked:
		return "long-mode-checked"
	case StageExtendedStateHandled:
		return "extended-state-handled"
	case StagePagingBuilt:
		return "paging-built"
	case StagePagingEnabled:
		return "paging-enabled"
	case StageTableLoaded:
		return "table-loaded"
	case StageTransferred:
		return "transferred"
	case StageHalted:
		return "halted"
	default:
		return "unknown"
	}
}

var (
	errBadMagic    = &kernel.Error{Module: "boot", Message: "loader did not report the multiboot2 magic"}
	errNoMemoryMap = &kernel.Error{Module: "boot", Message: "loader info carries no memory map tag"}
	errNoCPUID     = &kernel.Error{Module: "boot", Message: "CPUID instruction is not available"}
	errNoLongMode  = &kernel.Error{Module: "boot", Message: "CPU does not implement 64-bit long mode"}
)

var (
	// bootRecord is the single boot information record. It lives in a
	// package variable so its address stays valid across the mode switch.
	bootRecord bootinfo.Info

	stage Stage

	fatalFn               = kernel.Fatal
	detectFeaturesFn      = cpu.DetectFeatures
	supportsLongModeFn    = cpu.SupportsLongMode
	enableExtendedStateFn = cpu.EnableExtendedState
	buildBootTablesFn     = buildBootTables
	enterLongModeFn       = longmode.Enter
	installGDTFn          = seg.Install
	handoffFn             = seg.Handoff
	scanTagsFn            = multiboot.ScanTags
	initEarlyConsoleFn    = hal.InitEarlyConsole
	debugWriteFn          = debugport.Write
)

// CurrentStage returns how far the bring-up sequence has progressed.
func CurrentStage() Stage {
	return stage
}

// advance moves the machine to the next stage and emits its milestone digit
// to the debug port.
func advance(to Stage, milestone byte) {
	stage = to
	debugWriteFn(milestone)
}

// fatal stops the machine with the given cause character.
func fatal(diag byte, err *kernel.Error) {
	stage = StageHalted
	fatalFn(diag, err)
}

// buildBootTables overlays the reserved frames and populates the identity
// map, returning the address for the paging root register.
func buildBootTables() (uint64, *kernel.Error) {
	tables, err := vmm.OverlayBootPageTables(pageTableBase)
	if err != nil {
		return 0, err
	}
	return tables.BuildIdentityMap(), nil
}

// Bootstrap drives the machine from the 32-bit loader handoff to the 64-bit
// kernel entry point. magic and infoPtr are the values the loader left in
// EAX and EBX; entry is the kernel entry point that eventually receives the
// validated boot record.
//
// Each milestone emits a digit ('1' through '9') to the debug port, so a
// hung boot can be localized to a stage from the port transcript alone.
// Guard failures stop the machine via the fatal path and return; the caller
// must not treat a return from Bootstrap as success.
func Bootstrap(magic uint32, infoPtr uintptr, entry func(*bootinfo.ValidatedInfo)) {
	stage = StageStart
	initEarlyConsoleFn(0)

	bootRecord = bootinfo.Info{
		MultibootMagic: magic,
		MultibootInfo:  uint32(infoPtr),
		StackTop:       stackTop,
	}

	if magic != bootinfo.MultibootMagic {
		fatal('M', errBadMagic)
		return
	}
	advance(StageMagicChecked, '1')

	multiboot.SetInfoPtr(infoPtr)
	scanTagsFn(&bootRecord)

	// Re-point the console now that the loader-reported framebuffer is
	// known.
	initEarlyConsoleFn(uintptr(bootRecord.FramebufferAddr))

	if bootRecord.MemoryMapAddr == 0 {
		fatal('T', errNoMemoryMap)
		return
	}
	advance(StageMemoryMapChecked, '2')

	feat, ok := detectFeaturesFn()
	if !ok {
		fatal('C', errNoCPUID)
		return
	}
	bootRecord.CPUIDEDX = feat.EDX
	bootRecord.CPUIDECX = feat.ECX
	advance(StageCapabilityChecked, '3')

	if !supportsLongModeFn() {
		fatal('L', errNoLongMode)
		return
	}
	advance(StageLongModeChecked, '4')

	enableExtendedStateFn(feat)
	advance(StageExtendedStateHandled, '5')

	tableRoot, err := buildBootTablesFn()
	if err != nil {
		fatal('P', err)
		return
	}
	bootRecord.PageTableBase = tableRoot
	advance(StagePagingBuilt, '6')

	enterLongModeFn(tableRoot)
	advance(StagePagingEnabled, '7')

	installGDTFn()
	advance(StageTableLoaded, '8')

	advance(StageTransferred, '9')
	handoffFn(&bootRecord, entry)
}
