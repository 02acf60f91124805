package u16str

import "math"

// SliceIndex is a range shape that can cut a sub-view out of a Str.
//
// The set of shapes is closed: RangeFull, Range, RangeFrom, RangeTo,
// RangeInclusive and RangeToInclusive. Every shape works purely on code
// unit counts and never inspects surrogate boundaries.
//
// Views alias their storage, so the result of Get and Index is writable
// through Str.Set; there is no separate mutable lookup.
type SliceIndex interface {
	// Get returns the sub-view, or false if the range is invalid for s.
	Get(s Str) (Str, bool)

	// GetUnchecked returns the sub-view without validating the range.
	// The caller must already know the range is valid.
	GetUnchecked(s Str) Str

	// Index returns the sub-view and panics with an *IndexError if the
	// range is invalid for s.
	Index(s Str) Str

	sealed()
}

// RangeFull selects the whole view: [:].
type RangeFull struct{}

// Range selects the half-open span [Start:End).
type Range struct {
	Start int
	End   int
}

// RangeFrom selects [Start:].
type RangeFrom struct {
	Start int
}

// RangeTo selects [:End).
type RangeTo struct {
	End int
}

// RangeInclusive selects [Start:End].
type RangeInclusive struct {
	Start int
	End   int
}

// RangeToInclusive selects [:End].
type RangeToInclusive struct {
	End int
}

func (RangeFull) sealed()        {}
func (Range) sealed()            {}
func (RangeFrom) sealed()        {}
func (RangeTo) sealed()          {}
func (RangeInclusive) sealed()   {}
func (RangeToInclusive) sealed() {}

// Slice returns the sub-view selected by idx. It panics with an
// *IndexError if idx is invalid for s.
func (s Str) Slice(idx SliceIndex) Str {
	return idx.Index(s)
}

// GetSlice returns the sub-view selected by idx, or false if idx is
// invalid for s.
func (s Str) GetSlice(idx SliceIndex) (Str, bool) {
	return idx.Get(s)
}

// window cuts [start:end) out of s with the capacity capped at end.
func window(s Str, start, end int) Str {
	return s[start:end:end]
}

// --- RangeFull ---

func (RangeFull) Get(s Str) (Str, bool) { return s, true }
func (RangeFull) GetUnchecked(s Str) Str { return s }
func (RangeFull) Index(s Str) Str        { return s }

// --- Range ---

func (r Range) valid(s Str) bool {
	return 0 <= r.Start && r.Start <= r.End && r.End <= len(s)
}

func (r Range) Get(s Str) (Str, bool) {
	if !r.valid(s) {
		return nil, false
	}
	return r.GetUnchecked(s), true
}

func (r Range) GetUnchecked(s Str) Str {
	return window(s, r.Start, r.End)
}

func (r Range) Index(s Str) Str {
	if !r.valid(s) {
		panic(rangeOutOfBounds("slice", r.Start, r.End, len(s)))
	}
	return r.GetUnchecked(s)
}

// --- RangeFrom ---

func (r RangeFrom) Get(s Str) (Str, bool) {
	return Range{Start: r.Start, End: len(s)}.Get(s)
}

func (r RangeFrom) GetUnchecked(s Str) Str {
	return window(s, r.Start, len(s))
}

func (r RangeFrom) Index(s Str) Str {
	return Range{Start: r.Start, End: len(s)}.Index(s)
}

// --- RangeTo ---

func (r RangeTo) Get(s Str) (Str, bool) {
	return Range{End: r.End}.Get(s)
}

func (r RangeTo) GetUnchecked(s Str) Str {
	return window(s, 0, r.End)
}

func (r RangeTo) Index(s Str) Str {
	return Range{End: r.End}.Index(s)
}

// --- RangeInclusive ---

// exclusive converts to the half-open form. It reports false when End is
// already the largest int and cannot be advanced.
func (r RangeInclusive) exclusive() (Range, bool) {
	if r.End == math.MaxInt {
		return Range{}, false
	}
	return Range{Start: r.Start, End: r.End + 1}, true
}

func (r RangeInclusive) Get(s Str) (Str, bool) {
	ex, ok := r.exclusive()
	if !ok {
		return nil, false
	}
	return ex.Get(s)
}

func (r RangeInclusive) GetUnchecked(s Str) Str {
	return window(s, r.Start, r.End+1)
}

func (r RangeInclusive) Index(s Str) Str {
	ex, ok := r.exclusive()
	if !ok {
		panic(rangeOverflow("slice", r.Start, r.End, len(s)))
	}
	return ex.Index(s)
}

// --- RangeToInclusive ---

func (r RangeToInclusive) Get(s Str) (Str, bool) {
	return RangeInclusive{End: r.End}.Get(s)
}

func (r RangeToInclusive) GetUnchecked(s Str) Str {
	return window(s, 0, r.End+1)
}

func (r RangeToInclusive) Index(s Str) Str {
	return RangeInclusive{End: r.End}.Index(s)
}
