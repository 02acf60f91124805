// Package u16str provides UTF-16 strings with UTF-8-string-like ergonomics.
//
// Two types cover the borrowed/owned split:
//
//   - Str is a view over a run of 16-bit code units. It never owns its
//     storage; sub-views share the backing array of the value they were
//     cut from.
//   - Buffer is a growable, owned run of code units. Buffer.Str returns a
//     view of its current contents.
//
// Basic usage:
//
//	b := u16str.FromString("a\U00010000b")
//	b.Len()                          // 4 code units
//	for i, r := range b.RuneIndices() {
//	    // (0, 'a'), (1, U+10000), (3, 'b')
//	}
//	v := b.Slice(u16str.Range{Start: 1, End: 3}) // the surrogate pair
//	r, _ := b.Pop()                  // 'b'
//
// Offsets are always code-unit indices. Slicing works on code units and
// does not snap to code point boundaries, so a view may begin or end in
// the middle of a surrogate pair. Iteration and decoding are permissive:
// unpaired surrogates are produced as their raw numeric value rather than
// rejected.
//
// Views alias the storage of the Buffer they came from. Any Buffer
// mutation may reallocate, so views and iterators must not be held across
// a mutating call.
//
// Out-of-bounds access panics with an *IndexError, mirroring Go slice
// indexing. The Get-style methods report failure with a boolean instead.
package u16str
