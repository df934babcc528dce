// Package image validates executable images held in memory.
//
// The checks mirror what the environment's startup code needs: deciding
// whether a base address plausibly points at a loaded executable image,
// locating the section that contains a relative virtual address, and
// verifying that a target lives in a non-writable section. All functions
// are read-only and report false on malformed or truncated input instead
// of faulting.
package image

import (
	"bytes"

	"github.com/silver3-github/ucxxrt/internal/buf"
)

const (
	dosMagic    = 0x5A4D     // "MZ"
	ntSignature = 0x00004550 // "PE\0\0"

	optionalMagic32     = 0x10B
	optionalMagic64     = 0x20B
	optionalMagicROM    = 0x107
	dosLfanewOffset     = 0x3C
	fileHeaderOffset    = 4 // past the NT signature
	fileHeaderSize      = 20
	numberOfSectionsOff = 2  // within the file header
	optionalSizeOff     = 16 // within the file header

	sectionHeaderSize      = 40
	sectionNameSize        = 8
	sectionVirtualSizeOff  = 8
	sectionVirtualAddrOff  = 12
	sectionCharacteristics = 36

	// scnMemWrite is the writable-section characteristic flag.
	scnMemWrite = 0x80000000
)

// Section describes one section header of an image.
type Section struct {
	Name            string
	VirtualAddress  uint32
	VirtualSize     uint32
	Characteristics uint32
}

// Writable reports whether the section is mapped writable.
func (s Section) Writable() bool {
	return s.Characteristics&scnMemWrite != 0
}

// IsPotentiallyValidImageBase reports whether image plausibly holds a
// loaded executable image: DOS magic, NT signature, and a recognized
// optional-header magic all line up.
func IsPotentiallyValidImageBase(image []byte) bool {
	if len(image) == 0 || buf.U16(image, 0) != dosMagic {
		return false
	}
	ntOff := int(buf.U32(image, dosLfanewOffset))
	if ntOff <= 0 || buf.U32(image, ntOff) != ntSignature {
		return false
	}
	switch buf.U16(image, ntOff+fileHeaderOffset+fileHeaderSize) {
	case optionalMagic32, optionalMagic64:
		return true
	}
	return false
}

// FindSection locates the section containing the given relative virtual
// address. Section descriptors are scanned in table order; no assumption is
// made about their sort order. Returns false when no section covers rva or
// the image is malformed.
func FindSection(image []byte, rva uint32) (Section, bool) {
	if !IsPotentiallyValidImageBase(image) {
		return Section{}, false
	}

	ntOff := int(buf.U32(image, dosLfanewOffset))
	fileOff := ntOff + fileHeaderOffset
	count := int(buf.U16(image, fileOff+numberOfSectionsOff))
	optSize := int(buf.U16(image, fileOff+optionalSizeOff))

	secOff := fileOff + fileHeaderSize + optSize
	for i := range count {
		off := secOff + i*sectionHeaderSize
		if !buf.In(image, off, sectionHeaderSize) {
			return Section{}, false
		}
		va := buf.U32(image, off+sectionVirtualAddrOff)
		size := buf.U32(image, off+sectionVirtualSizeOff)
		if rva >= va && rva-va < size {
			name := image[off : off+sectionNameSize]
			if n := bytes.IndexByte(name, 0); n >= 0 {
				name = name[:n]
			}
			return Section{
				Name:            string(name),
				VirtualAddress:  va,
				VirtualSize:     size,
				Characteristics: buf.U32(image, off+sectionCharacteristics),
			}, true
		}
	}
	return Section{}, false
}

// IsNonwritableInImage reports whether rva falls inside a proper,
// non-writable section of the image. Used by startup code to confirm that
// a callback target cannot have been tampered with through a writable
// mapping. Any malformed input reports false.
func IsNonwritableInImage(image []byte, rva uint32) bool {
	sec, ok := FindSection(image, rva)
	if !ok {
		return false
	}
	return !sec.Writable()
}
