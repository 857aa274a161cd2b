package debugport

import (
	"testing"

	"github.com/ionicmc-rs/ion-os/kernel/cpu"
)

func TestWrite(t *testing.T) {
	defer func() {
		portWriteByteFn = cpu.PortWriteByte
	}()

	var (
		gotPort uint16
		got     []byte
	)
	portWriteByteFn = func(port uint16, val uint8) {
		gotPort = port
		got = append(got, val)
	}

	Write('M')
	WriteString("OK")

	if gotPort != 0xE9 {
		t.Errorf("expected writes to go to port 0xE9; got %#x", gotPort)
	}

	if string(got) != "MOK" {
		t.Errorf("expected port to receive \"MOK\"; got %q", string(got))
	}
}
