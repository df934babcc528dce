package image

import (
	"encoding/binary"
	"testing"
)

// buildImage assembles a minimal in-memory executable image with the given
// sections. Layout: DOS header (64 bytes), NT signature + file header +
// optional header, then the section table.
func buildImage(t *testing.T, sections []Section) []byte {
	t.Helper()

	const (
		ntOff   = 64
		optSize = 96
	)
	img := make([]byte, ntOff+fileHeaderOffset+fileHeaderSize+optSize+len(sections)*sectionHeaderSize)

	binary.LittleEndian.PutUint16(img[0:], dosMagic)
	binary.LittleEndian.PutUint32(img[dosLfanewOffset:], ntOff)
	binary.LittleEndian.PutUint32(img[ntOff:], ntSignature)

	fileOff := ntOff + fileHeaderOffset
	binary.LittleEndian.PutUint16(img[fileOff+numberOfSectionsOff:], uint16(len(sections)))
	binary.LittleEndian.PutUint16(img[fileOff+optionalSizeOff:], optSize)
	binary.LittleEndian.PutUint16(img[fileOff+fileHeaderSize:], optionalMagic64)

	secOff := fileOff + fileHeaderSize + optSize
	for i, s := range sections {
		off := secOff + i*sectionHeaderSize
		copy(img[off:off+sectionNameSize], s.Name)
		binary.LittleEndian.PutUint32(img[off+sectionVirtualSizeOff:], s.VirtualSize)
		binary.LittleEndian.PutUint32(img[off+sectionVirtualAddrOff:], s.VirtualAddress)
		binary.LittleEndian.PutUint32(img[off+sectionCharacteristics:], s.Characteristics)
	}
	return img
}

var testSections = []Section{
	{Name: ".text", VirtualAddress: 0x1000, VirtualSize: 0x2000},
	{Name: ".data", VirtualAddress: 0x3000, VirtualSize: 0x1000, Characteristics: scnMemWrite},
}

func Test_IsPotentiallyValidImageBase(t *testing.T) {
	img := buildImage(t, testSections)
	if !IsPotentiallyValidImageBase(img) {
		t.Fatal("well-formed image rejected")
	}
}

func Test_IsPotentiallyValidImageBase_Malformed(t *testing.T) {
	img := buildImage(t, testSections)

	cases := map[string]func([]byte){
		"empty":            func(b []byte) {},
		"bad dos magic":    func(b []byte) { b[0] = 'X' },
		"bad nt signature": func(b []byte) { b[64] = 0 },
		"bad optional magic": func(b []byte) {
			binary.LittleEndian.PutUint16(b[64+fileHeaderOffset+fileHeaderSize:], 0x999)
		},
		"lfanew past end": func(b []byte) {
			binary.LittleEndian.PutUint32(b[dosLfanewOffset:], 1<<30)
		},
	}
	for name, corrupt := range cases {
		bad := make([]byte, len(img))
		copy(bad, img)
		if name == "empty" {
			bad = nil
		} else {
			corrupt(bad)
		}
		if IsPotentiallyValidImageBase(bad) {
			t.Errorf("%s: accepted", name)
		}
	}
}

func Test_IsPotentiallyValidImageBase_Truncated(t *testing.T) {
	img := buildImage(t, testSections)
	for n := 0; n < 70; n += 7 {
		if IsPotentiallyValidImageBase(img[:n]) {
			t.Errorf("truncated image (%d bytes) accepted", n)
		}
	}
}

func Test_FindSection(t *testing.T) {
	img := buildImage(t, testSections)

	sec, ok := FindSection(img, 0x1800)
	if !ok {
		t.Fatal("rva 0x1800 not found")
	}
	if sec.Name != ".text" {
		t.Fatalf("section = %q, want .text", sec.Name)
	}

	sec, ok = FindSection(img, 0x3000)
	if !ok || sec.Name != ".data" {
		t.Fatalf("rva 0x3000: got %+v ok=%v, want .data", sec, ok)
	}

	// End of a section is exclusive.
	if _, ok := FindSection(img, 0x4000); ok {
		t.Fatal("rva past all sections must not resolve")
	}
	if _, ok := FindSection(img, 0x10); ok {
		t.Fatal("rva before all sections must not resolve")
	}
}

func Test_IsNonwritableInImage(t *testing.T) {
	img := buildImage(t, testSections)

	if !IsNonwritableInImage(img, 0x1000) {
		t.Fatal(".text target must be accepted")
	}
	if IsNonwritableInImage(img, 0x3800) {
		t.Fatal(".data target is writable and must be rejected")
	}
	if IsNonwritableInImage(img, 0x9000) {
		t.Fatal("unmapped rva must be rejected")
	}
	if IsNonwritableInImage(nil, 0x1000) {
		t.Fatal("nil image must be rejected")
	}
}

func Test_FindSection_TruncatedSectionTable(t *testing.T) {
	img := buildImage(t, testSections)
	// Claim more sections than the table holds.
	fileOff := 64 + fileHeaderOffset
	binary.LittleEndian.PutUint16(img[fileOff+numberOfSectionsOff:], 40)

	if _, ok := FindSection(img, 0x7000); ok {
		t.Fatal("out-of-bounds section walk must stop, not resolve")
	}
}
