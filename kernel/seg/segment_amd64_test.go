package seg

import (
	"testing"
	"unsafe"

	"github.com/ionicmc-rs/ion-os/kernel/bootinfo"
)

func TestEntryPacking(t *testing.T) {
	specs := []struct {
		flags    uint16
		base     uint32
		limit    uint32
		expBase  uint64
		expLimit uint32
	}{
		{kernelCodeFlags, 0, 0xFFFFF, 0, 0xFFFFF},
		{kernelCodeFlags, 0x00100000, 0x000FF, 0x00100000, 0x000FF},
		{kernelCodeFlags, 0xDEADB000, 0xABCDE, 0xDEADB000, 0xABCDE},
	}

	for specIndex, spec := range specs {
		entry := Entry(spec.flags, spec.base, spec.limit)

		if got := entryBase(entry); got != spec.expBase {
			t.Errorf("[spec %d] expected base %#x; got %#x", specIndex, spec.expBase, got)
		}
		if got := entryLimit(entry); got != spec.expLimit {
			t.Errorf("[spec %d] expected limit %#x; got %#x", specIndex, spec.expLimit, got)
		}
	}
}

func TestBootGDT(t *testing.T) {
	if bootGDT[0] != 0 {
		t.Errorf("expected a null first descriptor; got %#x", bootGDT[0])
	}

	code := bootGDT[SelectorKernelCode/8]
	if !entryPresent(code) {
		t.Error("expected the code descriptor to be present")
	}
	if dpl := entryDPL(code); dpl != 0 {
		t.Errorf("expected a ring-0 code descriptor; got DPL %d", dpl)
	}
	if !entryLong(code) {
		t.Error("expected the code descriptor to carry the long-mode bit")
	}
	// Type nibble 0xA: executable, readable, non-conforming.
	if typ := entryType(code); typ != 0xA {
		t.Errorf("expected descriptor type 0xA; got %#x", typ)
	}
	if base := entryBase(code); base != 0 {
		t.Errorf("expected a flat code descriptor; got base %#x", base)
	}
}

func TestNewPointer(t *testing.T) {
	p := NewPointer(0x1122334455667788, 2)

	// Limit 15 (two 8-byte entries), little-endian.
	if p[0] != 0x0F || p[1] != 0x00 {
		t.Errorf("expected encoded limit 0x000F; got [%#x %#x]", p[0], p[1])
	}

	expBase := []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	for i, b := range expBase {
		if p[2+i] != b {
			t.Errorf("expected base byte %d to be %#x; got %#x", i, b, p[2+i])
		}
	}
}

func TestInstall(t *testing.T) {
	defer func(orig func(uintptr)) { loadGDTFn = orig }(loadGDTFn)

	var loadedAddr uintptr
	loadGDTFn = func(addr uintptr) { loadedAddr = addr }

	Install()

	if loadedAddr != uintptr(unsafe.Pointer(&gdtPointer)) {
		t.Fatal("expected the table-pointer load to use the package operand")
	}

	limit := uint16(gdtPointer[0]) | uint16(gdtPointer[1])<<8
	if exp := uint16(len(bootGDT)*8 - 1); limit != exp {
		t.Errorf("expected encoded limit %#x; got %#x", exp, limit)
	}

	var base uint64
	for i := 0; i < 8; i++ {
		base |= uint64(gdtPointer[2+i]) << (8 * uint(i))
	}
	if exp := uint64(uintptr(unsafe.Pointer(&bootGDT[0]))); base != exp {
		t.Errorf("expected encoded base %#x; got %#x", exp, base)
	}
}

func TestHandoff(t *testing.T) {
	defer func(orig func(uint16)) { setDataSegmentsFn = orig }(setDataSegmentsFn)

	var (
		selectorLoaded = uint16(0xFFFF)
		got            *bootinfo.ValidatedInfo
	)
	setDataSegmentsFn = func(sel uint16) { selectorLoaded = sel }

	rec := bootinfo.Info{
		MultibootMagic:  bootinfo.MultibootMagic,
		PageTableBase:   0x2000,
		StackTop:        0x80000,
		FramebufferAddr: 0xB8000,
		MemoryMapAddr:   0x9000,
	}

	entry := func(vi *bootinfo.ValidatedInfo) { got = vi }
	Handoff(&rec, entry)

	if selectorLoaded != SelectorNull {
		t.Errorf("expected the data segments to be reloaded with the null selector; got %#x", selectorLoaded)
	}
	if got == nil {
		t.Fatal("expected the kernel entry point to be called")
	}
	if got.Info != &rec {
		t.Error("expected the view to reference the record")
	}
	if rec.KernelEntry == 0 {
		t.Error("expected the handoff to finalize the kernel entry address")
	}
	if rec.KernelEntry != FuncAddr(entry) {
		t.Errorf("expected KernelEntry %#x; got %#x", FuncAddr(entry), rec.KernelEntry)
	}
	if !got.Valid {
		t.Error("expected a fully populated record to validate")
	}
}
