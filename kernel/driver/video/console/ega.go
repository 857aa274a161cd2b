package console

import (
	"reflect"
	"unsafe"
)

const (
	clearColor = Black
	clearChar  = byte(' ')
)

// Ega implements an EGA-compatible text console over a framebuffer of
// consecutive 16-bit cells, each encoding {attribute, ascii}. During
// bring-up it points directly at the physical screen buffer; everything
// written is immediately visible.
type Ega struct {
	width  uint16
	height uint16

	fb []uint16
}

// Init sets up the console. The framebuffer slice is faked up to point at
// the supplied physical address.
func (cons *Ega) Init(width, height uint16, fbPhysAddr uintptr) {
	cons.width = width
	cons.height = height

	cons.fb = *(*[]uint16)(unsafe.Pointer(&reflect.SliceHeader{
		Len:  int(cons.width) * int(cons.height),
		Cap:  int(cons.width) * int(cons.height),
		Data: fbPhysAddr,
	}))
}

// Dimensions returns the console width and height in characters.
func (cons *Ega) Dimensions() (uint16, uint16) {
	return cons.width, cons.height
}

// Clear clears the specified rectangular region.
func (cons *Ega) Clear(x, y, width, height uint16) {
	var (
		attr                 = uint16((clearColor << 4) | clearColor)
		clr                  = attr | uint16(clearChar)
		rowOffset, colOffset uint16
	)

	// clip rectangle
	if x >= cons.width {
		x = cons.width
	}
	if y >= cons.height {
		y = cons.height
	}

	if x+width > cons.width {
		width = cons.width - x
	}
	if y+height > cons.height {
		height = cons.height - y
	}

	rowOffset = (y * cons.width) + x
	for ; height > 0; height, rowOffset = height-1, rowOffset+cons.width {
		for colOffset = rowOffset; colOffset < rowOffset+width; colOffset++ {
			cons.fb[colOffset] = clr
		}
	}
}

// Write a char to the specified location.
func (cons *Ega) Write(ch byte, attr Attr, x, y uint16) {
	if x >= cons.width || y >= cons.height {
		return
	}

	cons.fb[(y*cons.width)+x] = (uint16(attr) << 8) | uint16(ch)
}

// WriteString writes s starting at the specified location, clipping at the
// end of the row.
func (cons *Ega) WriteString(s string, attr Attr, x, y uint16) {
	for i := 0; i < len(s); i++ {
		cons.Write(s[i], attr, x+uint16(i), y)
	}
}
