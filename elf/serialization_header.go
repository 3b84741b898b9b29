// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// fileHeader64 is the Elf64_Ehdr wire layout past the 16-byte identification
// block, which is read and written separately.
type fileHeader64 struct {
	Type             uint16
	Machine          uint16
	Version          uint32
	Entry            uint64
	ProgHdrOff       uint64
	SecHdrOff        uint64
	Flags            uint32
	HeaderSize       uint16
	ProgHdrEntrySize uint16
	ProgHdrCount     uint16
	SecHdrEntrySize  uint16
	SecHdrCount      uint16
	SecHdrStrIndex   uint16
}

// FileHeaderSize is the on-disk size of an Elf64_Ehdr, identification
// included.
const FileHeaderSize = 64

var (
	ErrBadMagic   = errors.New("invalid ELF magic")
	ErrNotClass64 = errors.New("not a 64-bit ELF object")
	ErrBadHeader  = errors.New("inconsistent header layout")
)

// HasMagic reports whether b starts with the four ELF identification bytes
// 0x7F "ELF".
func HasMagic(b []byte) bool {
	return len(b) >= 4 &&
		b[0] == ELFMAG0 && b[1] == ELFMAG1 && b[2] == ELFMAG2 && b[3] == ELFMAG3
}

func (f *File) sizeFileHeader() int {
	return binary.Size(&fileHeader64{}) + EI_NIDENT
}

func (f *File) readFileHeader(r io.Reader) error {
	ident := make([]byte, EI_NIDENT)

	if _, err := io.ReadFull(r, ident); err != nil {
		return fmt.Errorf("reading identification: %w", err)
	}

	if !HasMagic(ident) {
		return ErrBadMagic
	}

	f.Class = FileClass(ident[4])
	f.Data = DataEncoding(ident[5])
	f.HeaderVersion = ident[6]
	f.ABI = ident[7]
	f.ABIVersion = ident[8]

	if f.Class != ELFCLASS64 {
		return fmt.Errorf("%w: class %d", ErrNotClass64, f.Class)
	}
	if f.Data != ELFDATA2LSB && f.Data != ELFDATA2MSB {
		return fmt.Errorf("invalid data encoding: %d", f.Data)
	}

	var fh fileHeader64
	if err := binary.Read(r, f.ByteOrder(), &fh); err != nil {
		return err
	}

	f.Type = FileType(fh.Type)
	f.Machine = Machine(fh.Machine)
	f.Version = fh.Version
	f.Entry = fh.Entry
	f.Flags = fh.Flags
	f.progHdrOffset = fh.ProgHdrOff
	f.secHdrOffset = fh.SecHdrOff
	f.headerSize = fh.HeaderSize
	f.secHdrCount = fh.SecHdrCount
	f.secHdrStrIdx = fh.SecHdrStrIndex

	if fh.SecHdrCount > 0 && int(fh.SecHdrEntrySize) != f.sizeSectionHeader() {
		return fmt.Errorf("%w: section header entry size %d", ErrBadHeader, fh.SecHdrEntrySize)
	}
	if f.secHdrStrIdx == SHN_XINDEX {
		return fmt.Errorf("%w: SHN_XINDEX string table index not supported", ErrBadHeader)
	}

	return nil
}

func (f *File) writeFileHeader(w io.Writer) error {
	ident := make([]byte, EI_NIDENT)

	ident[0] = ELFMAG0
	ident[1] = ELFMAG1
	ident[2] = ELFMAG2
	ident[3] = ELFMAG3

	ident[4] = uint8(f.Class)
	ident[5] = uint8(f.Data)
	ident[6] = f.HeaderVersion
	ident[7] = f.ABI
	ident[8] = f.ABIVersion

	if _, err := w.Write(ident); err != nil {
		return err
	}

	var fh fileHeader64

	fh.Type = uint16(f.Type)
	fh.Machine = uint16(f.Machine)
	fh.Version = f.Version
	fh.Entry = f.Entry
	fh.ProgHdrOff = f.progHdrOffset
	fh.SecHdrOff = f.secHdrOffset
	fh.Flags = f.Flags
	fh.HeaderSize = f.headerSize
	fh.SecHdrEntrySize = uint16(f.sizeSectionHeader())
	fh.SecHdrCount = f.secHdrCount
	fh.SecHdrStrIndex = f.secHdrStrIdx

	return binary.Write(w, f.ByteOrder(), &fh)
}
