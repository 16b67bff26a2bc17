// Package sdf derives bipolar signed distance fields from glyph coverage
// bitmaps.
//
// The unsigned distances come from Gustavson's anti-aliased Euclidean
// distance transform ("edtaa3"). It propagates the offset to the closest
// edge pixel through repeated 8-connected sweeps and refines each distance
// with the sub-pixel edge position implied by the coverage value and the
// local gradient. Two transforms run per field, one on the coverage and one
// on its complement, and their difference is the bipolar field.
//
// # Representations
//
// Field maps the bipolar field into [0, 1]: 0 deep inside the glyph, 0.5 on
// the outline and 1 far outside. The field is clamped symmetrically at the
// deepest inside distance, so the far outside saturates at 1.
//
// Field8 is the fixed-scale 8-bit variant used without a resampling step:
//
//	255 - clamp(128 + 16*(outside-inside), 0, 255)
//
// which is bright inside the glyph and 127 on the outline.
//
// # References
//
// - S. Gustavson, R. Strand: "Anti-aliased Euclidean distance transform",
// Pattern Recognition Letters 32 (2011).
package sdf
