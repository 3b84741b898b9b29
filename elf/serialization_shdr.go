// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"io"
)

// sectionHeader64 is the Elf64_Shdr wire layout.
type sectionHeader64 struct {
	Name      uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

// SectionHeaderSize is the on-disk size of an Elf64_Shdr.
const SectionHeaderSize = 64

func (f *File) sizeSectionHeader() int {
	return binary.Size(&sectionHeader64{})
}

func (f *File) readSectionHeader(r io.ReadSeeker) (*Section, error) {
	var sh sectionHeader64
	if err := binary.Read(r, f.ByteOrder(), &sh); err != nil {
		return nil, err
	}

	result := &Section{
		nameOffset: sh.Name,
		Type:       SectionType(sh.Type),
		Flags:      SectionFlag(sh.Flags),
		Addr:       sh.Addr,
		offset:     sh.Offset,
		Size:       sh.Size,
		Link:       sh.Link,
		Info:       sh.Info,
		AddrAlign:  sh.AddrAlign,
		EntSize:    sh.EntSize,
	}

	if result.Size > 0 && result.Type.HasDataInFile() {
		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}

		if _, err := r.Seek(int64(result.offset), io.SeekStart); err != nil {
			return nil, err
		}
		result.Data = make([]byte, result.Size)
		if _, err := io.ReadFull(r, result.Data); err != nil {
			return nil, err
		}

		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (f *File) writeSectionHeader(w io.Writer, input *Section) error {
	var sh sectionHeader64

	sh.Name = input.nameOffset
	sh.Type = uint32(input.Type)
	sh.Flags = uint64(input.Flags)
	sh.Addr = input.Addr
	sh.Offset = input.offset
	sh.Size = input.Size
	sh.Link = input.Link
	sh.Info = input.Info
	sh.AddrAlign = input.AddrAlign
	sh.EntSize = input.EntSize

	return binary.Write(w, f.ByteOrder(), &sh)
}
