// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	code := []byte{0x55, 0x48, 0x89, 0xE5, 0xE8, 0x00, 0x00, 0x00, 0x00, 0x5D, 0xC3}

	f := testFile()
	text := &Section{
		Name:      ".text",
		Type:      SHT_PROGBITS,
		Flags:     SHF_ALLOC | SHF_EXECINSTR,
		AddrAlign: 16,
		Data:      code,
	}
	bss := &Section{
		Name:      ".bss",
		Type:      SHT_NOBITS,
		Flags:     SHF_ALLOC | SHF_WRITE,
		AddrAlign: 8,
		Size:      64,
	}
	f.Sections = []*Section{text, bss}

	nullSym := &Symbol{}
	fileSym := &Symbol{Name: "example.c", Type: STT_FILE, Binding: STB_LOCAL, SectionIndex: SHN_ABS}
	runSym := &Symbol{Name: "run", Type: STT_FUNC, Binding: STB_GLOBAL, Section: text, Size: uint64(len(code))}
	putsSym := &Symbol{Name: "puts", Type: STT_NOTYPE, Binding: STB_GLOBAL}
	f.Symbols = []*Symbol{nullSym, fileSym, runSym, putsSym}

	f.Relocations[text] = []*Relocation{
		{Section: text, Symbol: putsSym, Offset: 5, Type: R_X86_64_PLT32, Addend: -4},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	assert.True(t, HasMagic(buf.Bytes()), "output magic")

	g, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, ET_REL, g.Type, "file type")
	assert.Equal(t, EM_X86_64, g.Machine, "machine")
	assert.Equal(t, ELFDATA2LSB, g.Data, "data encoding")

	// Bookkeeping sections are folded away on read.
	require.Len(t, g.Sections, 3, "null, .text, .bss")
	assert.Equal(t, SHT_NULL, g.Sections[0].Type, "null section")

	gtext := g.Sections[1]
	assert.Equal(t, ".text", gtext.Name, "text name")
	assert.Equal(t, code, gtext.Data, "text data")
	assert.Equal(t, SHF_ALLOC|SHF_EXECINSTR, gtext.Flags, "text flags")
	assert.Equal(t, uint64(16), gtext.AddrAlign, "text alignment")

	gbss := g.Sections[2]
	assert.Equal(t, ".bss", gbss.Name, "bss name")
	assert.Equal(t, SHT_NOBITS, gbss.Type, "bss type")
	assert.Equal(t, uint64(64), gbss.Size, "bss size")
	assert.Nil(t, gbss.Data, "bss has no file data")

	// STB_LOCAL symbols first, then globals sorted by name.
	require.Len(t, g.Symbols, 4, "symbol count")
	assert.Equal(t, "", g.Symbols[0].Name, "null symbol")
	assert.Equal(t, "example.c", g.Symbols[1].Name, "file symbol")
	assert.Equal(t, uint16(SHN_ABS), g.Symbols[1].SectionIndex, "file symbol stays absolute")
	assert.Equal(t, "puts", g.Symbols[2].Name, "undefined symbol")
	assert.Nil(t, g.Symbols[2].Section, "undefined symbol has no section")
	assert.Equal(t, "run", g.Symbols[3].Name, "defined symbol")
	require.NotNil(t, g.Symbols[3].Section, "defined symbol section")
	assert.Equal(t, ".text", g.Symbols[3].Section.Name, "defined symbol section name")

	rels := g.Relocations[gtext]
	require.Len(t, rels, 1, "relocation count")
	assert.Equal(t, R_X86_64_PLT32, rels[0].Type, "relocation type")
	assert.Equal(t, uint64(5), rels[0].Offset, "relocation offset")
	assert.Equal(t, int64(-4), rels[0].Addend, "relocation addend")
	require.NotNil(t, rels[0].Symbol, "relocation symbol")
	assert.Equal(t, "puts", rels[0].Symbol.Name, "relocation symbol name")
}

func TestReadRejectsBadMagic(t *testing.T) {
	buf := make([]byte, 128)
	copy(buf, "MZ")

	_, err := Read(bytes.NewReader(buf))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestReadRejectsClass32(t *testing.T) {
	buf := make([]byte, 128)
	buf[0] = ELFMAG0
	buf[1] = ELFMAG1
	buf[2] = ELFMAG2
	buf[3] = ELFMAG3
	buf[4] = uint8(ELFCLASS32)
	buf[5] = uint8(ELFDATA2LSB)

	_, err := Read(bytes.NewReader(buf))
	assert.ErrorIs(t, err, ErrNotClass64)
}

func TestSectionDataAlignment(t *testing.T) {
	f := testFile()
	f.Sections = []*Section{
		{Name: ".a", Type: SHT_PROGBITS, AddrAlign: 1, Data: []byte{1, 2, 3}},
		{Name: ".b", Type: SHT_PROGBITS, AddrAlign: 64, Data: []byte{4, 5, 6, 7}},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	g, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, g.Sections, 3, "null, .a, .b")
	assert.Equal(t, ".a", g.Sections[1].Name, ".a name")
	assert.Equal(t, ".b", g.Sections[2].Name, ".b name")
	assert.Equal(t, []byte{1, 2, 3}, g.Sections[1].Data, ".a data")
	assert.Equal(t, []byte{4, 5, 6, 7}, g.Sections[2].Data, ".b data")
	assert.Zero(t, g.Sections[2].offset%64, ".b offset alignment")
}

func TestAlignmentGapKeepsSectionNames(t *testing.T) {
	// A large alignment leaves a gap before the section's data; the string
	// tables land inside that gap, out of section-list order.
	f := testFile()
	data := bytes.Repeat([]byte{0xAA}, 32)
	f.Sections = []*Section{
		{Name: ".big", Type: SHT_PROGBITS, Flags: SHF_ALLOC, AddrAlign: 4096, Data: data},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	g, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, g.Sections, 2, "null, .big")
	assert.Equal(t, ".big", g.Sections[1].Name, "section name survives alignment gap")
	assert.Equal(t, data, g.Sections[1].Data, "section data")
	assert.Zero(t, g.Sections[1].offset%4096, "section offset alignment")
}

func TestReadRejectsSymbolSectionOutOfRange(t *testing.T) {
	f := testFile()
	f.Symbols = []*Symbol{
		{},
		{Name: "stray", Binding: STB_GLOBAL, SectionIndex: 42},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := Read(bytes.NewReader(buf.Bytes()))
	require.Error(t, err, "out-of-range st_shndx must not parse")
	assert.ErrorContains(t, err, "references section 42")
}

func TestWriteRejectsOrphanRelocationTarget(t *testing.T) {
	f := testFile()
	orphan := &Section{Name: ".orphan", Type: SHT_PROGBITS}
	f.Relocations[orphan] = []*Relocation{
		{Section: orphan, Offset: 0, Type: R_X86_64_64},
	}

	var buf bytes.Buffer
	err := f.Write(&buf)
	require.Error(t, err, "orphan relocation target must not be dropped")
	assert.ErrorContains(t, err, ".orphan")
}
