// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/portabletools/elfkit/layout"
)

// sectionExtent adapts a section's data to the placement arena.
type sectionExtent struct {
	sec *Section
}

func (e *sectionExtent) Offset() uint64 {
	return e.sec.offset
}

func (e *sectionExtent) SetOffset(offset uint64) {
	e.sec.offset = offset
}

func (e *sectionExtent) Length() uint64 {
	return uint64(len(e.sec.Data))
}

func (e *sectionExtent) Alignment() uint64 {
	if e.sec.AddrAlign > 1 {
		return e.sec.AddrAlign
	}
	return 1
}

// Write serializes the file as a 64-bit ELF object. The string tables,
// symbol table and relocation tables dropped by Read are regenerated here,
// so a read-modify-write cycle preserves them.
//
// File layout:
//   - file header
//   - section headers
//   - section data, placed honoring each section's alignment
func (f *File) Write(w io.Writer) error {
	sections := slices.Clone(f.Sections)
	if len(sections) == 0 || sections[0].Type != SHT_NULL {
		sections = slices.Insert(sections, 0, &Section{Type: SHT_NULL})
	}
	if len(sections)+3+len(f.Relocations) >= SHN_LORESERVE {
		return fmt.Errorf("unsupported section count: %d", len(sections))
	}

	// STB_LOCAL symbols must precede all others in the symbol table.
	slices.SortFunc(f.Symbols, func(a *Symbol, b *Symbol) int {
		if a.Binding != b.Binding {
			return int(a.Binding) - int(b.Binding)
		}
		return strings.Compare(a.Name, b.Name)
	})

	sectionStringTable := newStringTable()
	stringTable := newStringTable()

	sectionStringTableSection := &Section{
		Name: ".shstrtab",
		Type: SHT_STRTAB,
	}
	stringTableSection := &Section{
		Name: ".strtab",
		Type: SHT_STRTAB,
	}
	symbolTableSection := &Section{
		Name:      ".symtab",
		Type:      SHT_SYMTAB,
		EntSize:   uint64(f.sizeSymbol()),
		AddrAlign: 8,
	}
	f.secHdrStrIdx = uint16(len(sections))
	strTabIdx := len(sections) + 1
	symTabIdx := len(sections) + 2
	sections = append(sections, sectionStringTableSection, stringTableSection, symbolTableSection)
	symbolTableSection.Link = uint32(strTabIdx)

	for parent, relocations := range f.Relocations {
		if len(relocations) > 0 && !slices.Contains(sections, parent) {
			return fmt.Errorf("relocations target unknown section %q", parent.Name)
		}
	}

	// Relocation tables, one SHT_RELA per patched section. Iterating the
	// section list rather than the map keeps the output deterministic.
	for i, parent := range sections[:symTabIdx+1] {
		relocations := f.Relocations[parent]
		if len(relocations) == 0 {
			continue
		}

		relSection := &Section{
			Name:      ".rela" + parent.Name,
			Type:      SHT_RELA,
			EntSize:   uint64(f.sizeRelocation(SHT_RELA)),
			Info:      uint32(i),
			Link:      uint32(symTabIdx),
			AddrAlign: 8,
		}

		var relBuffer bytes.Buffer
		for _, rel := range relocations {
			if rel.Symbol != nil {
				rel.symbolIndex = slices.Index(f.Symbols, rel.Symbol)
				if rel.symbolIndex < 0 {
					return fmt.Errorf("relocation in %q references unknown symbol %q", parent.Name, rel.Symbol.Name)
				}
			}
			if err := f.writeRelocation(&relBuffer, SHT_RELA, rel); err != nil {
				return err
			}
		}
		relSection.Data = relBuffer.Bytes()
		sections = append(sections, relSection)
	}

	// Section string table.
	for _, sh := range sections {
		sh.nameOffset = sectionStringTable.Add(sh.Name)
	}

	// Symbol table. sh_info holds the index of the first non-local symbol.
	symbolTableSection.Info = uint32(len(f.Symbols))
	var symtabBuffer bytes.Buffer
	globalBindingSet := false
	for i, sym := range f.Symbols {
		sym.nameOffset = stringTable.Add(sym.Name)
		if sym.Section != nil {
			idx := slices.Index(sections, sym.Section)
			if idx < 0 {
				return fmt.Errorf("symbol %q references unknown section %q", sym.Name, sym.Section.Name)
			}
			sym.SectionIndex = uint16(idx)
		}
		if !globalBindingSet && sym.Binding != STB_LOCAL {
			symbolTableSection.Info = uint32(i)
			globalBindingSet = true
		}
		if err := f.writeSymbol(&symtabBuffer, sym); err != nil {
			return err
		}
	}
	symbolTableSection.Data = symtabBuffer.Bytes()

	sectionStringTableSection.Data = sectionStringTable.ToData()
	stringTableSection.Data = stringTable.ToData()

	// File layout: header, section header table, then section data placed by
	// the arena so each section lands on its alignment.
	f.headerSize = uint16(f.sizeFileHeader())
	f.progHdrOffset = 0
	f.secHdrCount = uint16(len(sections))
	f.secHdrOffset = uint64(f.headerSize)

	dataStart := f.secHdrOffset + uint64(len(sections))*uint64(f.sizeSectionHeader())
	arena := layout.NewRegion[*sectionExtent](dataStart, 1<<62, false)
	for _, sh := range sections {
		sh.offset = 0
		if !sh.Type.HasDataInFile() {
			continue
		}
		sh.Size = uint64(len(sh.Data))
		if sh.Size == 0 {
			continue
		}
		if _, ok := arena.Place(&sectionExtent{sec: sh}); !ok {
			return fmt.Errorf("cannot place section %q", sh.Name)
		}
	}

	if err := f.writeFileHeader(w); err != nil {
		return err
	}

	for _, sh := range sections {
		if err := f.writeSectionHeader(w, sh); err != nil {
			return err
		}
	}

	// The arena backfills alignment gaps, so placement order can differ from
	// section-list order. Emit data by assigned offset, padding up to each.
	placed := make([]*Section, 0, len(sections))
	for _, sh := range sections {
		if len(sh.Data) > 0 {
			placed = append(placed, sh)
		}
	}
	slices.SortFunc(placed, func(a *Section, b *Section) int {
		return cmp.Compare(a.offset, b.offset)
	})

	pos := dataStart
	for _, sh := range placed {
		if sh.offset > pos {
			if _, err := w.Write(make([]byte, sh.offset-pos)); err != nil {
				return err
			}
			pos = sh.offset
		}
		if _, err := w.Write(sh.Data); err != nil {
			return err
		}
		pos += uint64(len(sh.Data))
	}

	return nil
}
