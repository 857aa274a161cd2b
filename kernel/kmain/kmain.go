package kmain

import (
	"github.com/ionicmc-rs/ion-os/kernel"
	"github.com/ionicmc-rs/ion-os/kernel/boot"
	"github.com/ionicmc-rs/ion-os/kernel/bootinfo"
	"github.com/ionicmc-rs/ion-os/kernel/cpu"
	"github.com/ionicmc-rs/ion-os/kernel/driver/video/console"
	"github.com/ionicmc-rs/ion-os/kernel/hal"
)

var errKmainReturned = &kernel.Error{Module: "kmain", Message: "boot sequence returned without transferring control"}

var (
	bootstrapFn = boot.Bootstrap
	fatalFn     = kernel.Fatal
	cpuHaltFn   = cpu.Halt

	// bootView is the validated record handed over by the boot path. The
	// kernel proper picks it up from here.
	bootView *bootinfo.ValidatedInfo
)

// Kmain is the high-level kernel entry invoked by the rt0 trampoline with
// the registers the loader left behind. It drives the bring-up sequence and
// never returns; a return from the sequence without a control transfer is
// itself a fatal condition.
//
//go:noinline
func Kmain(magic uint32, infoPtr uintptr) {
	bootstrapFn(magic, infoPtr, kernelEntry)
	fatalFn('R', errKmainReturned)
}

// kernelEntry receives the validated boot record. The kernel proper is not
// implemented yet; the record is parked for it and the CPU halts with a
// visible marker.
func kernelEntry(info *bootinfo.ValidatedInfo) {
	bootView = info

	attr := console.LightGreen
	if !info.Valid {
		attr = console.LightRed
	}
	hal.EarlyConsole.Write('H', attr, 4, 0)

	cpuHaltFn()
}
