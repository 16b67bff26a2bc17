// Package glfont bakes the glyphs of a scalable font into a single signed
// distance field atlas.
//
// # Overview
//
// Each glyph is stored as a bipolar distance field: 0.5 (127 in the 8-bit
// atlas) on the outline, brighter inside and darker outside. Sampling the
// atlas with bilinear filtering and thresholding at 0.5 reproduces crisp
// outlines at any scale from one texture.
//
// # Quick Start
//
//	e, err := glfont.OpenFont("DejaVuSans.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	res, err := glfont.Generate(ctx, e, "DejaVuSans", 512, glfont.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = glfont.WritePNG("DejaVuSans.png", res.Atlas)
//	_ = glfont.WriteJSON("DejaVuSans.json", glfont.NewRecord(res, 0.001))
//
// # Pipeline
//
// Generate drops the code points the font lacks, then searches upwards from
// Config.StartSize for the largest font size whose glyph bounds still fit
// the atlas. At that size every glyph is rendered Config.SDFScale times
// larger, transformed with the anti-aliased Euclidean distance transform
// (package sdf), reduced with a Mitchell-Netravali filter and packed with a
// skyline packer (package pack). Metrics and kerning are normalized by the
// font size.
//
// # Coordinates
//
// The atlas has its origin at the bottom-left. Texture coordinates follow
// that convention: T1 is the bottom and T0 the top of a glyph, so T1 < T0.
// WritePNG stores the top row first, as PNG requires.
//
// # Logging
//
// glfont is silent by default. See SetLogger.
package glfont
