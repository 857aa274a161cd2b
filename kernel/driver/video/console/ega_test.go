package console

import (
	"testing"
	"unsafe"
)

func newTestConsole(t *testing.T) (*Ega, []uint16) {
	t.Helper()

	fb := make([]uint16, 80*25)
	cons := &Ega{}
	cons.Init(80, 25, uintptr(unsafe.Pointer(&fb[0])))
	return cons, fb
}

func TestEgaInit(t *testing.T) {
	cons, _ := newTestConsole(t)

	if w, h := cons.Dimensions(); w != 80 || h != 25 {
		t.Fatalf("expected console dimensions to be 80x25; got %dx%d", w, h)
	}
}

func TestEgaWrite(t *testing.T) {
	cons, fb := newTestConsole(t)

	cons.Write('A', LightGrey, 0, 0)
	if exp := (uint16(LightGrey) << 8) | uint16('A'); fb[0] != exp {
		t.Errorf("expected cell 0 to be %#x; got %#x", exp, fb[0])
	}

	cons.Write('B', Red, 1, 2)
	if exp := (uint16(Red) << 8) | uint16('B'); fb[2*80+1] != exp {
		t.Errorf("expected cell (1,2) to be %#x; got %#x", exp, fb[2*80+1])
	}

	// Out-of-bounds writes are dropped.
	cons.Write('C', Red, 80, 0)
	cons.Write('C', Red, 0, 25)
	for i, cell := range fb {
		if cell != 0 && i != 0 && i != 2*80+1 {
			t.Fatalf("expected out-of-bounds writes to be dropped; cell %d is %#x", i, cell)
		}
	}
}

func TestEgaWriteString(t *testing.T) {
	cons, fb := newTestConsole(t)

	cons.WriteString("OK", LightGrey, 0, 1)
	if byte(fb[80]) != 'O' || byte(fb[81]) != 'K' {
		t.Errorf("expected row 1 to start with \"OK\"; got %c%c", byte(fb[80]), byte(fb[81]))
	}

	// Strings clip at the right edge instead of wrapping.
	cons.WriteString("XYZ", LightGrey, 78, 0)
	if byte(fb[78]) != 'X' || byte(fb[79]) != 'Y' {
		t.Error("expected the string head to be written up to the edge")
	}
	if byte(fb[80]) != 'O' {
		t.Error("expected the string tail to be clipped, not wrapped")
	}
}

func TestEgaClear(t *testing.T) {
	cons, fb := newTestConsole(t)

	for i := range fb {
		fb[i] = 0xdead
	}

	cons.Clear(0, 0, 80, 25)
	for i, cell := range fb {
		if exp := uint16(clearChar); cell != exp {
			t.Fatalf("expected cell %d to be cleared to %#x; got %#x", i, exp, cell)
		}
	}
}

func TestEgaClearClipping(t *testing.T) {
	cons, fb := newTestConsole(t)

	for i := range fb {
		fb[i] = 0xdead
	}

	// A rectangle extending past both edges is clipped, not wrapped.
	cons.Clear(78, 24, 10, 10)

	var cleared int
	for _, cell := range fb {
		if cell == uint16(clearChar) {
			cleared++
		}
	}
	if cleared != 2 {
		t.Errorf("expected exactly 2 cells to be cleared; got %d", cleared)
	}
}
