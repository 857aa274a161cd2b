package longmode

import (
	"testing"

	"github.com/ionicmc-rs/ion-os/kernel/cpu"
)

// regWrite records a single simulated register write.
type regWrite struct {
	reg string
	val uint64
}

func TestEnterSequence(t *testing.T) {
	defer func() {
		readCR0Fn = cpu.ReadCR0
		writeCR0Fn = cpu.WriteCR0
		writeCR3Fn = cpu.WriteCR3
		readCR4Fn = cpu.ReadCR4
		writeCR4Fn = cpu.WriteCR4
		readMSRFn = cpu.ReadMSR
		writeMSRFn = cpu.WriteMSR
	}()

	var (
		writes []regWrite
		cr0    uint64 = 0x11 // PE plus an unrelated bit that must survive
		cr4    uint64 = 0x200
		efer   uint64
	)

	readCR0Fn = func() uint64 { return cr0 }
	writeCR0Fn = func(val uint64) { cr0 = val; writes = append(writes, regWrite{"cr0", val}) }
	writeCR3Fn = func(val uint64) { writes = append(writes, regWrite{"cr3", val}) }
	readCR4Fn = func() uint64 { return cr4 }
	writeCR4Fn = func(val uint64) { cr4 = val; writes = append(writes, regWrite{"cr4", val}) }
	readMSRFn = func(msr uint32) uint64 {
		if msr != MSREFER {
			t.Fatalf("unexpected MSR read %#x", msr)
		}
		return efer
	}
	writeMSRFn = func(msr uint32, val uint64) {
		if msr != MSREFER {
			t.Fatalf("unexpected MSR write %#x", msr)
		}
		efer = val
		writes = append(writes, regWrite{"efer", val})
	}

	Enter(0x2000)

	expWrites := []regWrite{
		{"cr4", 0x200 | CR4PAE},
		{"cr3", 0x2000},
		{"efer", EFERLME},
		{"cr0", 0x11 | CR0PG},
	}

	if len(writes) != len(expWrites) {
		t.Fatalf("expected %d register writes; got %d", len(expWrites), len(writes))
	}

	for i, exp := range expWrites {
		if writes[i] != exp {
			t.Errorf("[write %d] expected %s=%#x; got %s=%#x", i, exp.reg, exp.val, writes[i].reg, writes[i].val)
		}
	}

	// Paging must be enabled by the final write.
	if last := writes[len(writes)-1]; last.reg != "cr0" || last.val&CR0PG == 0 {
		t.Error("expected the paging-enable write to come last")
	}
}
