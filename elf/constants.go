// SPDX-License-Identifier: MIT

package elf

import "fmt"

// Identification bytes. Every ELF file starts with 0x7F "ELF".
const (
	EI_NIDENT = 16

	ELFMAG0 = 0x7F
	ELFMAG1 = 'E'
	ELFMAG2 = 'L'
	ELFMAG3 = 'F'
)

type FileClass uint8

const (
	ELFCLASS32 FileClass = 1
	ELFCLASS64 FileClass = 2
)

type DataEncoding uint8

const (
	ELFDATA2LSB DataEncoding = 1
	ELFDATA2MSB DataEncoding = 2
)

const (
	EV_NONE    = 0
	EV_CURRENT = 1
)

type FileType uint16

const (
	ET_NONE FileType = 0
	ET_REL  FileType = 1
	ET_EXEC FileType = 2
	ET_DYN  FileType = 3
	ET_CORE FileType = 4
)

func (t FileType) String() string {
	switch t {
	case ET_NONE:
		return "NONE"
	case ET_REL:
		return "REL"
	case ET_EXEC:
		return "EXEC"
	case ET_DYN:
		return "DYN"
	case ET_CORE:
		return "CORE"
	}
	return fmt.Sprintf("FileType(%d)", uint16(t))
}

type Machine uint16

const (
	EM_NONE    Machine = 0
	EM_386     Machine = 3
	EM_X86_64  Machine = 62
	EM_AARCH64 Machine = 183
)

func (m Machine) String() string {
	switch m {
	case EM_NONE:
		return "None"
	case EM_386:
		return "Intel 80386"
	case EM_X86_64:
		return "AMD x86-64"
	case EM_AARCH64:
		return "ARM AArch64"
	}
	return fmt.Sprintf("Machine(%d)", uint16(m))
}

// Reserved section header indices.
const (
	SHN_UNDEF     = 0
	SHN_LORESERVE = 0xFF00
	SHN_ABS       = 0xFFF1
	SHN_COMMON    = 0xFFF2
	SHN_XINDEX    = 0xFFFF
)

type SectionType uint32

const (
	SHT_NULL     SectionType = 0
	SHT_PROGBITS SectionType = 1
	SHT_SYMTAB   SectionType = 2
	SHT_STRTAB   SectionType = 3
	SHT_RELA     SectionType = 4
	SHT_HASH     SectionType = 5
	SHT_DYNAMIC  SectionType = 6
	SHT_NOTE     SectionType = 7
	SHT_NOBITS   SectionType = 8
	SHT_REL      SectionType = 9
	SHT_SHLIB    SectionType = 10
	SHT_DYNSYM   SectionType = 11
)

func (s SectionType) HasSectionInInfo() bool {
	return s == SHT_REL || s == SHT_RELA
}

func (s SectionType) HasDataInFile() bool {
	return s != SHT_NULL && s != SHT_NOBITS
}

func (s SectionType) String() string {
	switch s {
	case SHT_NULL:
		return "NULL"
	case SHT_PROGBITS:
		return "PROGBITS"
	case SHT_SYMTAB:
		return "SYMTAB"
	case SHT_STRTAB:
		return "STRTAB"
	case SHT_RELA:
		return "RELA"
	case SHT_HASH:
		return "HASH"
	case SHT_DYNAMIC:
		return "DYNAMIC"
	case SHT_NOTE:
		return "NOTE"
	case SHT_NOBITS:
		return "NOBITS"
	case SHT_REL:
		return "REL"
	case SHT_SHLIB:
		return "SHLIB"
	case SHT_DYNSYM:
		return "DYNSYM"
	}
	return fmt.Sprintf("SectionType(%d)", uint32(s))
}

type SectionFlag uint64

const (
	SHF_WRITE     SectionFlag = 0x1
	SHF_ALLOC     SectionFlag = 0x2
	SHF_EXECINSTR SectionFlag = 0x4
	SHF_MASKPROC  SectionFlag = 0xF0000000
)

type SymbolBinding int

const (
	STB_LOCAL  SymbolBinding = 0
	STB_GLOBAL SymbolBinding = 1
	STB_WEAK   SymbolBinding = 2
)

func (b SymbolBinding) String() string {
	switch b {
	case STB_LOCAL:
		return "LOCAL"
	case STB_GLOBAL:
		return "GLOBAL"
	case STB_WEAK:
		return "WEAK"
	}
	return fmt.Sprintf("SymbolBinding(%d)", int(b))
}

type SymbolType int

const (
	STT_NOTYPE  SymbolType = 0
	STT_OBJECT  SymbolType = 1
	STT_FUNC    SymbolType = 2
	STT_SECTION SymbolType = 3
	STT_FILE    SymbolType = 4
	STT_COMMON  SymbolType = 5
	STT_TLS     SymbolType = 6
)

func (t SymbolType) String() string {
	switch t {
	case STT_NOTYPE:
		return "NOTYPE"
	case STT_OBJECT:
		return "OBJECT"
	case STT_FUNC:
		return "FUNC"
	case STT_SECTION:
		return "SECTION"
	case STT_FILE:
		return "FILE"
	case STT_COMMON:
		return "COMMON"
	case STT_TLS:
		return "TLS"
	}
	return fmt.Sprintf("SymbolType(%d)", int(t))
}

type R_X86_64 uint32

const (
	R_X86_64_NONE      R_X86_64 = 0  // No relocation.
	R_X86_64_64        R_X86_64 = 1  // Direct 64 bit.
	R_X86_64_PC32      R_X86_64 = 2  // PC relative 32 bit signed.
	R_X86_64_GOT32     R_X86_64 = 3  // 32 bit GOT entry.
	R_X86_64_PLT32     R_X86_64 = 4  // 32 bit PLT address.
	R_X86_64_COPY      R_X86_64 = 5  // Copy symbol at runtime.
	R_X86_64_GLOB_DAT  R_X86_64 = 6  // Create GOT entry.
	R_X86_64_JUMP_SLOT R_X86_64 = 7  // Create PLT entry.
	R_X86_64_RELATIVE  R_X86_64 = 8  // Adjust by program base.
	R_X86_64_32        R_X86_64 = 9  // Direct 32 bit zero extended.
	R_X86_64_32S       R_X86_64 = 10 // Direct 32 bit sign extended.
	R_X86_64_16        R_X86_64 = 11 // Direct 16 bit.
	R_X86_64_PC16      R_X86_64 = 12 // 16 bit sign extended PC relative.
	R_X86_64_8         R_X86_64 = 13 // Direct 8 bit.
	R_X86_64_PC8       R_X86_64 = 14 // 8 bit sign extended PC relative.
)

func (r R_X86_64) String() string {
	switch r {
	case R_X86_64_NONE:
		return "R_X86_64_NONE"
	case R_X86_64_64:
		return "R_X86_64_64"
	case R_X86_64_PC32:
		return "R_X86_64_PC32"
	case R_X86_64_GOT32:
		return "R_X86_64_GOT32"
	case R_X86_64_PLT32:
		return "R_X86_64_PLT32"
	case R_X86_64_COPY:
		return "R_X86_64_COPY"
	case R_X86_64_GLOB_DAT:
		return "R_X86_64_GLOB_DAT"
	case R_X86_64_JUMP_SLOT:
		return "R_X86_64_JUMP_SLOT"
	case R_X86_64_RELATIVE:
		return "R_X86_64_RELATIVE"
	case R_X86_64_32:
		return "R_X86_64_32"
	case R_X86_64_32S:
		return "R_X86_64_32S"
	case R_X86_64_16:
		return "R_X86_64_16"
	case R_X86_64_PC16:
		return "R_X86_64_PC16"
	case R_X86_64_8:
		return "R_X86_64_8"
	case R_X86_64_PC8:
		return "R_X86_64_PC8"
	}
	return fmt.Sprintf("R_X86_64(%d)", uint32(r))
}
