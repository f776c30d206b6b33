// Package operator implements the pure pixel-level transforms of the
// adjustment pipeline.
//
// Every operator is a function from a source buffer plus parameters to a
// freshly allocated result; inputs are never mutated and repeated calls
// with the same arguments are byte-for-byte deterministic. Each operator
// honors the neutral-value contract: at its identity parameter (0, false,
// strength 0) the output equals the input exactly.
//
// Spatial operators use a single border policy: clamp-extend, where
// samples outside the image reuse the nearest edge pixel. Alpha is copied
// through unchanged except by edge detection, which discards transparency
// and forces alpha to 255.
//
// Geometry operators (rotate, flip, crop) are exact index remappings and
// the only operators allowed to change buffer dimensions.
package operator
