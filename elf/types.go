// SPDX-License-Identifier: MIT

package elf

// File is an in-memory model of a 64-bit ELF object. Sections listed here
// exclude the bookkeeping sections (string tables, symbol tables, relocation
// tables); those are parsed into Symbols and Relocations on read and rebuilt
// on write.
type File struct {
	Class         FileClass
	Data          DataEncoding
	HeaderVersion uint8
	ABI           uint8
	ABIVersion    uint8

	Type    FileType
	Machine Machine
	Version uint32
	Entry   uint64
	Flags   uint32

	Sections    []*Section
	Symbols     []*Symbol
	Relocations map[*Section][]*Relocation `json:"-"`

	progHdrOffset uint64
	secHdrOffset  uint64
	headerSize    uint16
	secHdrCount   uint16
	secHdrStrIdx  uint16
}

type Section struct {
	Name        string
	nameOffset  uint32
	Type        SectionType
	Flags       SectionFlag
	Addr        uint64
	offset      uint64
	Size        uint64
	Link        uint32
	LinkSection *Section
	Info        uint32
	InfoSection *Section
	AddrAlign   uint64
	EntSize     uint64
	Data        []byte
}

type Symbol struct {
	Name         string
	nameOffset   uint32
	Type         SymbolType
	Binding      SymbolBinding
	Other        uint8
	Section      *Section
	SectionIndex uint16
	Value        uint64
	Size         uint64
}

type Relocation struct {
	Section     *Section
	Symbol      *Symbol
	symbolIndex int
	Offset      uint64
	Type        R_X86_64
	Addend      int64
}
