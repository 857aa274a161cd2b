package kernel

import (
	"github.com/ionicmc-rs/ion-os/kernel/cpu"
	"github.com/ionicmc-rs/ion-os/kernel/driver/debugport"
	"github.com/ionicmc-rs/ion-os/kernel/driver/video/console"
	"github.com/ionicmc-rs/ion-os/kernel/hal"
)

var (
	// cpuHaltFn is mocked by tests and is automatically inlined by the compiler.
	cpuHaltFn = cpu.Halt

	// debugWriteFn is mocked by tests so Fatal can run in user mode where
	// port I/O is not permitted.
	debugWriteFn = debugport.Write
)

// Fatal reports an unrecoverable bring-up failure and halts the CPU. The
// diagnostic pair ('E' followed by the cause character) is emitted to both
// the text console and the debug port so the failure is visible even when
// no display is attached. No recovery is possible at this layer; the whole
// boot attempt must be restarted externally.
//
// Calls to Fatal only return when the halt hook has been replaced by a test.
func Fatal(diag byte, err *Error) {
	debugWriteFn('E')
	debugWriteFn(diag)

	hal.EarlyConsole.Write('E', console.LightRed, 0, 0)
	hal.EarlyConsole.Write(diag, console.LightRed, 1, 0)
	if err != nil {
		hal.EarlyConsole.WriteString(err.Module, console.LightGrey, 0, 1)
		hal.EarlyConsole.WriteString(err.Message, console.LightGrey, 0, 2)
	}

	cpuHaltFn()
}
