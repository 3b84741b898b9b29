// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile() *File {
	return &File{
		Class:         ELFCLASS64,
		Data:          ELFDATA2LSB,
		HeaderVersion: EV_CURRENT,
		Type:          ET_REL,
		Machine:       EM_X86_64,
		Version:       EV_CURRENT,
		Relocations:   make(map[*Section][]*Relocation),
	}
}

func TestFileHeaderLayout(t *testing.T) {
	f := testFile()
	f.Entry = 0x401000
	f.secHdrOffset = 64
	f.secHdrCount = 5
	f.secHdrStrIdx = 2
	f.headerSize = FileHeaderSize

	var buf bytes.Buffer
	require.NoError(t, f.writeFileHeader(&buf))

	b := buf.Bytes()
	require.Len(t, b, FileHeaderSize, "file header size")

	assert.Equal(t, []byte{0x7F, 'E', 'L', 'F'}, b[0:4], "magic")
	assert.Equal(t, uint8(ELFCLASS64), b[4], "class")
	assert.Equal(t, uint8(ELFDATA2LSB), b[5], "data encoding")
	assert.Equal(t, uint16(ET_REL), binary.LittleEndian.Uint16(b[16:]), "e_type")
	assert.Equal(t, uint16(EM_X86_64), binary.LittleEndian.Uint16(b[18:]), "e_machine")
	assert.Equal(t, uint32(EV_CURRENT), binary.LittleEndian.Uint32(b[20:]), "e_version")
	assert.Equal(t, uint64(0x401000), binary.LittleEndian.Uint64(b[24:]), "e_entry")
	assert.Equal(t, uint64(64), binary.LittleEndian.Uint64(b[40:]), "e_shoff")
	assert.Equal(t, uint16(FileHeaderSize), binary.LittleEndian.Uint16(b[52:]), "e_ehsize")
	assert.Equal(t, uint16(SectionHeaderSize), binary.LittleEndian.Uint16(b[58:]), "e_shentsize")
	assert.Equal(t, uint16(5), binary.LittleEndian.Uint16(b[60:]), "e_shnum")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(b[62:]), "e_shstrndx")
}

func TestSectionHeaderLayout(t *testing.T) {
	f := testFile()
	sh := &Section{
		nameOffset: 7,
		Type:       SHT_PROGBITS,
		Flags:      SHF_ALLOC | SHF_EXECINSTR,
		Addr:       0x1000,
		offset:     0x200,
		Size:       0x80,
		Link:       3,
		Info:       4,
		AddrAlign:  16,
		EntSize:    0,
	}

	var buf bytes.Buffer
	require.NoError(t, f.writeSectionHeader(&buf, sh))

	b := buf.Bytes()
	require.Len(t, b, SectionHeaderSize, "section header size")

	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(b[0:]), "sh_name")
	assert.Equal(t, uint32(SHT_PROGBITS), binary.LittleEndian.Uint32(b[4:]), "sh_type")
	assert.Equal(t, uint64(SHF_ALLOC|SHF_EXECINSTR), binary.LittleEndian.Uint64(b[8:]), "sh_flags")
	assert.Equal(t, uint64(0x1000), binary.LittleEndian.Uint64(b[16:]), "sh_addr")
	assert.Equal(t, uint64(0x200), binary.LittleEndian.Uint64(b[24:]), "sh_offset")
	assert.Equal(t, uint64(0x80), binary.LittleEndian.Uint64(b[32:]), "sh_size")
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(b[40:]), "sh_link")
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(b[44:]), "sh_info")
	assert.Equal(t, uint64(16), binary.LittleEndian.Uint64(b[48:]), "sh_addralign")
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(b[56:]), "sh_entsize")
}

func TestSymbolLayout(t *testing.T) {
	f := testFile()
	sym := &Symbol{
		nameOffset:   9,
		Type:         STT_FUNC,
		Binding:      STB_GLOBAL,
		Other:        0,
		SectionIndex: 1,
		Value:        0x40,
		Size:         0x10,
	}

	var buf bytes.Buffer
	require.NoError(t, f.writeSymbol(&buf, sym))

	b := buf.Bytes()
	require.Len(t, b, SymbolSize, "symbol size")

	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(b[0:]), "st_name")
	assert.Equal(t, uint8(0x12), b[4], "st_info")
	assert.Equal(t, uint8(0), b[5], "st_other")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(b[6:]), "st_shndx")
	assert.Equal(t, uint64(0x40), binary.LittleEndian.Uint64(b[8:]), "st_value")
	assert.Equal(t, uint64(0x10), binary.LittleEndian.Uint64(b[16:]), "st_size")
}

func TestRelocationLayout(t *testing.T) {
	f := testFile()
	rel := &Relocation{
		symbolIndex: 5,
		Offset:      0x20,
		Type:        R_X86_64_PC32,
		Addend:      -4,
	}

	var buf bytes.Buffer
	require.NoError(t, f.writeRelocation(&buf, SHT_RELA, rel))

	b := buf.Bytes()
	require.Len(t, b, RelaSize, "rela size")

	assert.Equal(t, uint64(0x20), binary.LittleEndian.Uint64(b[0:]), "r_offset")
	assert.Equal(t, uint64(21474836482), binary.LittleEndian.Uint64(b[8:]), "r_info")
	assert.Equal(t, int64(-4), int64(binary.LittleEndian.Uint64(b[16:])), "r_addend")
}

func TestHasMagic(t *testing.T) {
	assert.True(t, HasMagic([]byte{0x7F, 'E', 'L', 'F', 2, 1, 1}), "valid magic")
	assert.False(t, HasMagic([]byte{0x7F, 'E', 'L'}), "short buffer")
	assert.False(t, HasMagic([]byte("MZLF....")), "wrong magic")
}
