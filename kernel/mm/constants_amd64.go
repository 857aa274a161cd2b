package mm

const (
	// PageShift is equal to log2(PageSize). This constant is used when we
	// need to convert a physical address to a page number (shift right by
	// PageShift) and vice-versa.
	PageShift = uintptr(12)

	// PageSize defines the system's page size in bytes.
	PageSize = uintptr(1 << PageShift)

	// LargePageShift is equal to log2(LargePageSize).
	LargePageShift = uintptr(21)

	// LargePageSize is the size of a single large-page mapping: one page
	// directory leaf entry covers this many bytes.
	LargePageSize = uintptr(1 << LargePageShift)
)
