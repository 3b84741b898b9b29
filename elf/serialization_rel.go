// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// rel64 and rela64 are the Elf64_Rel and Elf64_Rela wire layouts. The Info
// field packs the symbol index and relocation type, see RelocationInfo.
type rel64 struct {
	Offset uint64
	Info   uint64
}

type rela64 struct {
	Offset uint64
	Info   uint64
	Addend int64
}

// RelaSize is the on-disk size of an Elf64_Rela.
const RelaSize = 24

func (f *File) sizeRelocation(t SectionType) int {
	if t == SHT_RELA {
		return binary.Size(&rela64{})
	}
	return binary.Size(&rel64{})
}

func (f *File) readRelocation(r io.Reader, target *Section, t SectionType) (*Relocation, error) {
	var result Relocation
	result.Section = target

	var info RelocationInfo
	switch t {
	case SHT_RELA:
		var rel rela64
		if err := binary.Read(r, f.ByteOrder(), &rel); err != nil {
			return nil, err
		}
		result.Offset = rel.Offset
		result.Addend = rel.Addend
		info = RelocationInfo(rel.Info)
	case SHT_REL:
		var rel rel64
		if err := binary.Read(r, f.ByteOrder(), &rel); err != nil {
			return nil, err
		}
		result.Offset = rel.Offset
		info = RelocationInfo(rel.Info)
	default:
		return nil, fmt.Errorf("not a relocation section type: %d", t)
	}

	result.symbolIndex = int(info.SymbolIndex())
	result.Type = R_X86_64(info.Type())

	if result.symbolIndex >= len(f.Symbols) {
		return nil, fmt.Errorf("relocation references symbol %d of %d", result.symbolIndex, len(f.Symbols))
	}
	result.Symbol = f.Symbols[result.symbolIndex]

	return &result, nil
}

func (f *File) writeRelocation(w io.Writer, t SectionType, input *Relocation) error {
	info := uint64(MakeRelocationInfo(uint64(input.symbolIndex), uint64(input.Type)))

	if t == SHT_RELA {
		rel := rela64{
			Offset: input.Offset,
			Info:   info,
			Addend: input.Addend,
		}
		return binary.Write(w, f.ByteOrder(), &rel)
	}

	rel := rel64{
		Offset: input.Offset,
		Info:   info,
	}
	return binary.Write(w, f.ByteOrder(), &rel)
}
