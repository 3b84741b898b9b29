// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// symbol64 is the Elf64_Sym wire layout.
type symbol64 struct {
	Name         uint32
	Info         uint8
	Other        uint8
	SectionIndex uint16
	Value        uint64
	Size         uint64
}

// SymbolSize is the on-disk size of an Elf64_Sym.
const SymbolSize = 24

func (f *File) sizeSymbol() int {
	return binary.Size(&symbol64{})
}

func (f *File) readSymbol(r io.Reader, strtab *Section) (*Symbol, error) {
	var sym symbol64
	if err := binary.Read(r, f.ByteOrder(), &sym); err != nil {
		return nil, err
	}

	var result Symbol
	result.nameOffset = sym.Name
	result.Binding, result.Type = splitSymbolInfo(sym.Info)
	result.Other = sym.Other
	result.SectionIndex = sym.SectionIndex
	result.Value = sym.Value
	result.Size = sym.Size

	name, err := stringAt(strtab.Data, sym.Name)
	if err != nil {
		return nil, err
	}
	result.Name = name

	if result.SectionIndex > 0 && result.SectionIndex < SHN_LORESERVE {
		if int(result.SectionIndex) >= len(f.Sections) {
			return nil, fmt.Errorf("symbol %q references section %d of %d", result.Name, result.SectionIndex, len(f.Sections))
		}
		result.Section = f.Sections[int(result.SectionIndex)]
		result.SectionIndex = 0
	}

	return &result, nil
}

func (f *File) writeSymbol(w io.Writer, input *Symbol) error {
	var sym symbol64

	sym.Name = input.nameOffset
	sym.Info = symbolInfo(input.Binding, input.Type)
	sym.Other = input.Other
	sym.SectionIndex = input.SectionIndex
	sym.Value = input.Value
	sym.Size = input.Size

	return binary.Write(w, f.ByteOrder(), &sym)
}
