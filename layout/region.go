// SPDX-License-Identifier: MIT

// Package layout places fixed-size, aligned entries inside a bounded region
// of file or address space. The ELF writer uses it to assign section data
// offsets; it works for any entry that knows its size and alignment.
package layout

import "slices"

type Placeable interface {
	Offset() uint64
	SetOffset(uint64)
	Length() uint64
	Alignment() uint64
}

// Region is a half-open range [offset, offset+size) holding placed entries
// sorted by offset. A descending region fills from the top down.
type Region[T Placeable] struct {
	offset     uint64
	size       uint64
	entries    []T
	descending bool
}

func NewRegion[T Placeable](offset uint64, size uint64, descending bool) *Region[T] {
	return &Region[T]{
		offset:     offset,
		size:       size,
		descending: descending,
	}
}

func (r *Region[T]) Offset() uint64 {
	return r.offset
}

func (r *Region[T]) Size() uint64 {
	return r.size
}

func (r *Region[T]) Empty() bool {
	return len(r.entries) == 0
}

// UsedStart returns the lowest occupied offset, or the region start if empty.
func (r *Region[T]) UsedStart() uint64 {
	if r.Empty() {
		return r.offset
	}
	return r.entries[0].Offset()
}

// UsedEnd returns the offset one past the highest occupied byte, or the
// region start if empty.
func (r *Region[T]) UsedEnd() uint64 {
	if r.Empty() {
		return r.offset
	}
	last := r.entries[len(r.entries)-1]
	return last.Offset() + last.Length()
}

func alignUp(v uint64, a uint64) uint64 {
	if a > 1 {
		v += a - 1
		v -= v % a
	}
	return v
}

func alignDown(v uint64, a uint64) uint64 {
	if a > 1 {
		v -= v % a
	}
	return v
}

// gaps yields the free ranges [start, end) between placed entries, in
// ascending order, including the space before the first entry and after the
// last.
func (r *Region[T]) gaps() [][2]uint64 {
	var out [][2]uint64
	start := r.offset
	for _, e := range r.entries {
		if e.Offset() > start {
			out = append(out, [2]uint64{start, e.Offset()})
		}
		start = e.Offset() + e.Length()
	}
	if end := r.offset + r.size; end > start {
		out = append(out, [2]uint64{start, end})
	}
	return out
}

// Place assigns entry an offset inside the region, honoring its alignment,
// and records it. Ascending regions use the first fitting gap; descending
// regions the last. Returns the assigned offset, or false if no gap fits.
func (r *Region[T]) Place(entry T) (uint64, bool) {
	gaps := r.gaps()
	if r.descending {
		slices.Reverse(gaps)
	}

	for _, gap := range gaps {
		var at uint64
		if r.descending {
			if gap[1]-gap[0] < entry.Length() {
				continue
			}
			at = alignDown(gap[1]-entry.Length(), entry.Alignment())
			if at < gap[0] {
				continue
			}
		} else {
			at = alignUp(gap[0], entry.Alignment())
			if at+entry.Length() > gap[1] || at < gap[0] {
				continue
			}
		}

		entry.SetOffset(at)
		idx, _ := slices.BinarySearchFunc(r.entries, at, func(e T, target uint64) int {
			switch {
			case e.Offset() < target:
				return -1
			case e.Offset() > target:
				return 1
			}
			return 0
		})
		r.entries = slices.Insert(r.entries, idx, entry)
		return at, true
	}

	return 0, false
}
