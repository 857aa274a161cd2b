package debugport

import "github.com/ionicmc-rs/ion-os/kernel/cpu"

// Port is the qemu/bochs debug console port. Bytes written here show up on
// the VM's debug console with no framing; there is no protocol beyond raw
// byte emission.
const Port = uint16(0xE9)

var (
	// portWriteByteFn is mocked by tests; port I/O faults in user mode.
	portWriteByteFn = cpu.PortWriteByte
)

// Write emits a single milestone or diagnostic byte.
func Write(b byte) {
	portWriteByteFn(Port, b)
}

// WriteString emits each byte of s in order.
func WriteString(s string) {
	for i := 0; i < len(s); i++ {
		portWriteByteFn(Port, s[i])
	}
}
