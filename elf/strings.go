// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"fmt"
)

// stringAt returns the NUL-terminated string starting at off inside a string
// table section's data.
func stringAt(strtab []byte, off uint32) (string, error) {
	if int64(off) >= int64(len(strtab)) {
		return "", fmt.Errorf("string offset %d outside table of %d bytes", off, len(strtab))
	}
	end := bytes.IndexByte(strtab[off:], 0)
	if end < 0 {
		return "", fmt.Errorf("unterminated string at offset %d", off)
	}
	return string(strtab[off : int(off)+end]), nil
}

// stringTable accumulates strings for a SHT_STRTAB section, deduplicating
// exact repeats. Offset 0 always holds the empty string.
type stringTable struct {
	offsets map[string]uint32
	data    []byte
}

func newStringTable() *stringTable {
	return &stringTable{
		offsets: map[string]uint32{"": 0},
		data:    []byte{0},
	}
}

func (t *stringTable) Add(s string) uint32 {
	if off, ok := t.offsets[s]; ok {
		return off
	}
	off := uint32(len(t.data))
	t.offsets[s] = off
	t.data = append(t.data, s...)
	t.data = append(t.data, 0)
	return off
}

func (t *stringTable) ToData() []byte {
	return t.data
}
