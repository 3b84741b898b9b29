// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"fmt"
	"io"
)

func (f *File) ByteOrder() binary.ByteOrder {
	if f.Data == ELFDATA2MSB {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Read parses a 64-bit ELF object. String tables, symbol tables and
// relocation tables are folded into Symbols and Relocations rather than kept
// as sections; Write rebuilds them. Program headers are not modeled.
func Read(r io.ReadSeeker) (*File, error) {
	f := &File{}
	f.Relocations = make(map[*Section][]*Relocation)

	if err := f.readFileHeader(r); err != nil {
		return nil, err
	}

	// Section headers.
	if _, err := r.Seek(int64(f.secHdrOffset), io.SeekStart); err != nil {
		return nil, err
	}
	symtabIdx := 0
	for i := 0; i < int(f.secHdrCount); i++ {
		hdr, err := f.readSectionHeader(r)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		f.Sections = append(f.Sections, hdr)
		if hdr.Type == SHT_SYMTAB {
			symtabIdx = i
		}
	}

	for _, hdr := range f.Sections {
		if hdr.Link != SHN_UNDEF && int(hdr.Link) < len(f.Sections) {
			hdr.LinkSection = f.Sections[hdr.Link]
		}
		if hdr.Type.HasSectionInInfo() && int(hdr.Info) < len(f.Sections) {
			hdr.InfoSection = f.Sections[hdr.Info]
		}
	}

	// Section names via .shstrtab.
	if f.secHdrStrIdx != SHN_UNDEF {
		if int(f.secHdrStrIdx) >= len(f.Sections) {
			return nil, fmt.Errorf("%w: section name table index %d", ErrBadHeader, f.secHdrStrIdx)
		}
		shstrtab := f.Sections[f.secHdrStrIdx]
		for i, hdr := range f.Sections {
			name, err := stringAt(shstrtab.Data, hdr.nameOffset)
			if err != nil {
				return nil, fmt.Errorf("section %d name: %w", i, err)
			}
			hdr.Name = name
		}
	}

	// Symbols.
	if symtabIdx > 0 {
		symtab := f.Sections[symtabIdx]
		if symtab.LinkSection == nil || symtab.LinkSection.Type != SHT_STRTAB {
			return nil, fmt.Errorf("symbol table %q has no string table", symtab.Name)
		}
		if symtab.EntSize != SymbolSize {
			return nil, fmt.Errorf("%w: symbol entry size %d", ErrBadHeader, symtab.EntSize)
		}
		count := symtab.Size / symtab.EntSize
		if _, err := r.Seek(int64(symtab.offset), io.SeekStart); err != nil {
			return nil, err
		}
		for i := 0; i < int(count); i++ {
			sym, err := f.readSymbol(r, symtab.LinkSection)
			if err != nil {
				return nil, fmt.Errorf("symbol %d: %w", i, err)
			}
			f.Symbols = append(f.Symbols, sym)
		}
	}

	// Relocations, attached to the section they patch.
	for i, hdr := range f.Sections {
		if !hdr.Type.HasSectionInInfo() {
			continue
		}
		if hdr.InfoSection == nil {
			return nil, fmt.Errorf("relocation section %q has no target", hdr.Name)
		}
		if sz := uint64(f.sizeRelocation(hdr.Type)); hdr.EntSize != sz {
			return nil, fmt.Errorf("%w: relocation entry size %d", ErrBadHeader, hdr.EntSize)
		}
		count := hdr.Size / hdr.EntSize
		if _, err := r.Seek(int64(hdr.offset), io.SeekStart); err != nil {
			return nil, err
		}
		target := hdr.InfoSection
		for j := 0; j < int(count); j++ {
			rel, err := f.readRelocation(r, target, hdr.Type)
			if err != nil {
				return nil, fmt.Errorf("section %d relocation %d: %w", i, j, err)
			}
			f.Relocations[target] = append(f.Relocations[target], rel)
		}
	}

	// Drop the sections parsed above; Write regenerates them. Do this last,
	// symbol and relocation parsing indexes into the full list.
	sections := make([]*Section, 0, len(f.Sections))
	for _, sh := range f.Sections {
		switch sh.Type {
		case SHT_REL, SHT_RELA, SHT_SYMTAB, SHT_STRTAB:
			continue
		}
		sections = append(sections, sh)
	}
	f.Sections = sections

	return f, nil
}
