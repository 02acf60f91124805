// Package offset translates text offsets between UTF-8 byte indexing and
// UTF-16 code-unit indexing.
//
// The mapping functions take the same logical text in both encodings and
// work by counting code points: the rank of the source offset (the number
// of code points that start strictly before it) is located in the target
// encoding. Both directions are linear scans; nothing is cached.
//
// PositionConverter builds on the same machinery to translate LSP-style
// (line, character) positions between the utf-8, utf-16 and utf-32
// position encodings.
package offset
