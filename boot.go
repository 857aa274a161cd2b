package main

import "github.com/ionicmc-rs/ion-os/kernel/kmain"

var (
	multibootMagic   uint32
	multibootInfoPtr uintptr
)

// main is the only Go symbol that is visible (exported) from the rt0
// initialization code. It works as a trampoline for calling the actual boot
// entrypoint (kmain.Kmain) and is intentionally defined to prevent the Go
// compiler from optimizing away the boot code as it is not aware of the
// presence of the rt0 code.
//
// Global variables are passed as arguments to Kmain to prevent the compiler
// from inlining the actual call and removing Kmain from the generated .o
// file. The rt0 code overwrites them with the register values the loader
// handed off before jumping here.
//
// main is not expected to return. If it does, the rt0 code will halt the CPU.
func main() {
	kmain.Kmain(multibootMagic, multibootInfoPtr)
}
