// Package output writes compiled fonts to disk.
//
// A compiled font is a texture plus a metadata file. The texture is written
// by SaveTexture with any selection of the R, G, B, A and L channels. The
// metadata format is picked by name with Lookup:
//
//	json      indented JSON
//	cbor      the JSON document in deterministic CBOR
//	font      binary .font with selectable byte order, read back by ReadFont
//	fntb      compact binary .fntb for fonts within U+FFFF, read back by ReadFNTB
//	font_xml  glyph range XML plus a glyph box mask texture
//
// RenderText draws a string with a compiled font for previews.
package output
