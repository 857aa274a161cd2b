package hal

import "github.com/ionicmc-rs/ion-os/kernel/driver/video/console"

// defaultTextFB is the standard VGA text-mode buffer address.
const defaultTextFB = uintptr(0xB8000)

// EarlyConsole is the text console used for boot milestones and fatal
// diagnostics until the kernel proper takes over the display.
var EarlyConsole = &console.Ega{}

// InitEarlyConsole attaches the early console to the loader-reported text
// framebuffer, falling back to the standard VGA buffer when the loader did
// not report one.
func InitEarlyConsole(fbAddr uintptr) {
	if fbAddr == 0 {
		fbAddr = defaultTextFB
	}
	EarlyConsole.Init(80, 25, fbAddr)
}
