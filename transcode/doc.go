// Package transcode serializes UTF-16 buffers to and from bytes.
//
// Encode and Decode work on raw code units and are lossless: unpaired
// surrogates survive a round trip. DecodeText, EncodeText and the
// streaming helpers go through golang.org/x/text and produce or consume
// UTF-8 text, replacing unpaired surrogates with U+FFFD.
package transcode
