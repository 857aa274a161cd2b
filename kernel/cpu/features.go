package cpu

const (
	// Leaf-1 ECX feature bits consumed by the boot path.
	featureXSAVE = 1 << 26
	featureAVX   = 1 << 28

	// Extended function range. Leaves above the maximum reported by
	// extendedLeafBase return undefined data and must not be queried.
	extendedLeafBase     = 0x80000000
	extendedLeafFeatures = 0x80000001

	// Long-mode bit in the extended feature leaf EDX.
	longModeBit = 1 << 29
)

// Features is the capability snapshot captured from CPUID leaf 1: the EDX
// and ECX feature bitmasks. The snapshot is stored into the boot information
// record and also consulted by the same stage to decide whether extended
// state management gets enabled.
type Features struct {
	EDX uint32
	ECX uint32
}

// HasXSAVE reports whether the CPU supports extended state management.
func (f Features) HasXSAVE() bool {
	return f.ECX&featureXSAVE != 0
}

// HasAVX reports whether the CPU supports the AVX state component.
func (f Features) HasAVX() bool {
	return f.ECX&featureAVX != 0
}

// DetectFeatures captures the leaf-1 feature bitmasks. It reports false
// when the CPUID instruction itself is unavailable, in which case the
// returned snapshot is zero and must not be consulted.
func DetectFeatures() (Features, bool) {
	if !idSupportedFn() {
		return Features{}, false
	}

	_, _, ecx, edx := cpuidFn(1, 0)
	return Features{EDX: edx, ECX: ecx}, true
}

// SupportsLongMode reports whether the CPU implements 64-bit long mode. The
// maximum extended leaf is checked first since querying a leaf beyond the
// reported range returns undefined data.
func SupportsLongMode() bool {
	maxLeaf, _, _, _ := cpuidFn(extendedLeafBase, 0)
	if maxLeaf < extendedLeafFeatures {
		return false
	}

	_, _, _, edx := cpuidFn(extendedLeafFeatures, 0)
	return edx&longModeBit != 0
}

// IsIntel returns true if the code is running on an Intel processor.
func IsIntel() bool {
	_, ebx, ecx, edx := cpuidFn(0, 0)
	return ebx == 0x756e6547 && // "Genu"
		edx == 0x49656e69 && // "ineI"
		ecx == 0x6c65746e // "ntel"
}
