// Package raster defines the pixel buffer shared by every stage of the
// adjustment pipeline.
//
// A Buffer is a width×height raster of 8-bit non-premultiplied RGBA
// samples in row-major order. Operators never mutate a Buffer they are
// given; they allocate and return a new one. The package provides deep
// copies, byte-level equality, content fingerprints, Rec.601 luma
// helpers, and conversion to and from the standard library image types
// used at the decode/encode boundary.
package raster
