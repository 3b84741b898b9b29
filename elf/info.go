// SPDX-License-Identifier: MIT

package elf

// RelocationInfo is the packed r_info field of an Elf64_Rela entry: the
// referenced symbol table index in the top 32 bits and the relocation type
// code in the bottom 32 bits.
type RelocationInfo uint64

func (i RelocationInfo) SymbolIndex() uint64 {
	return uint64(i) >> 32
}

func (i RelocationInfo) Type() uint64 {
	return uint64(i) & 0xFFFFFFFF
}

// MakeRelocationInfo packs a symbol table index and a relocation type code
// into an r_info value. A symbol index wider than 32 bits is truncated by
// the shift, matching the ELF64_R_INFO macro.
func MakeRelocationInfo(symbolIndex uint64, typ uint64) RelocationInfo {
	return RelocationInfo((symbolIndex << 32) | (typ & 0xFFFFFFFF))
}

// The st_info byte of an Elf64_Sym carries the binding in its top four bits
// and the symbol type in its bottom four.

func symbolInfo(binding SymbolBinding, typ SymbolType) uint8 {
	return uint8(typ&0xF) | (uint8(binding) << 4)
}

func splitSymbolInfo(info uint8) (SymbolBinding, SymbolType) {
	return SymbolBinding(info >> 4), SymbolType(info & 0xF)
}
