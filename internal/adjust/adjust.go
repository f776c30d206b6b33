// Package adjust holds the per-document adjustment state and the
// compositor that derives the displayed buffer from the untouched
// original.
//
// Adjustments is a plain record with one field per operator; its zero
// value is the all-neutral state, so a freshly loaded document composes
// to an exact copy of its original. Parameter changes arrive as sealed
// Param variants, one concrete type per operator, so unknown operator
// tags are unrepresentable.
package adjust

import (
	"github.com/retouchlab/retouch/internal/operator"
)

// Adjustments is the source of truth for what the user currently wants.
// The zero value is neutral: composing it changes nothing.
//
// Range enforcement is the caller's job (sliders bound their own
// values); the operators clamp output, never input.
type Adjustments struct {
	Brightness int `json:"brightness"` // -100..100
	Contrast   int `json:"contrast"`   // -100..100
	Saturation int `json:"saturation"` // -100..100

	OffsetR int `json:"offsetR"` // -100..100 each
	OffsetG int `json:"offsetG"`
	OffsetB int `json:"offsetB"`

	Grayscale bool `json:"grayscale"`
	Invert    bool `json:"invert"`

	BlurRadius    float64 `json:"blurRadius"`    // box blur; 0..10
	SharpenAmount int     `json:"sharpenAmount"` // 0..100
	MedianRadius  int     `json:"medianRadius"`  // 0..5
	GaussianSigma float64 `json:"gaussianSigma"` // 0..5
	Laplacian     bool    `json:"laplacian"`

	Equalize EqualizeSettings  `json:"equalize"`
	Edge     operator.EdgeMode `json:"edge"`
}

// EqualizeSettings carries both histogram-equalization fields. The two
// travel together through the dispatch layer so that updating one never
// silently resets the other.
type EqualizeSettings struct {
	Strength int                   `json:"strength"` // 0..100
	Mode     operator.EqualizeMode `json:"mode"`
}

// Neutral returns the all-neutral state.
func Neutral() Adjustments {
	return Adjustments{}
}

// IsNeutral reports whether every field is at its identity value.
func (a Adjustments) IsNeutral() bool {
	return a == Adjustments{}
}

// Param is a sealed parameter change: exactly one concrete type exists
// per operator, and Apply dispatches on it exhaustively. External
// packages cannot add variants.
type Param interface {
	apply(*Adjustments)
}

// Apply mutates exactly the state field(s) belonging to p's operator.
func (a *Adjustments) Apply(p Param) {
	p.apply(a)
}

type (
	// Brightness sets the brightness value (-100..100).
	Brightness int
	// Contrast sets the contrast value (-100..100).
	Contrast int
	// Saturation sets the saturation value (-100..100).
	Saturation int
	// ChannelOffset sets all three RGB offsets together.
	ChannelOffset struct{ R, G, B int }
	// Grayscale enables or disables luma conversion.
	Grayscale bool
	// Invert enables or disables channel inversion.
	Invert bool
	// BoxBlur sets the box-blur radius (0 disables).
	BoxBlur float64
	// Sharpen sets the parametric sharpen strength (0..100).
	Sharpen int
	// Median sets the median-filter radius (0 disables).
	Median int
	// Gaussian sets the Gaussian-blur sigma (0 disables).
	Gaussian float64
	// Laplacian enables or disables the fixed Laplacian sharpen.
	Laplacian bool
	// Equalize sets both equalization fields at once.
	Equalize EqualizeSettings
	// Edge selects the edge-detection operator (EdgeNone disables).
	Edge operator.EdgeMode
)

func (p Brightness) apply(a *Adjustments) { a.Brightness = int(p) }
func (p Contrast) apply(a *Adjustments)   { a.Contrast = int(p) }
func (p Saturation) apply(a *Adjustments) { a.Saturation = int(p) }
func (p ChannelOffset) apply(a *Adjustments) {
	a.OffsetR, a.OffsetG, a.OffsetB = p.R, p.G, p.B
}
func (p Grayscale) apply(a *Adjustments) { a.Grayscale = bool(p) }
func (p Invert) apply(a *Adjustments)    { a.Invert = bool(p) }
func (p BoxBlur) apply(a *Adjustments)   { a.BlurRadius = float64(p) }
func (p Sharpen) apply(a *Adjustments)   { a.SharpenAmount = int(p) }
func (p Median) apply(a *Adjustments)    { a.MedianRadius = int(p) }
func (p Gaussian) apply(a *Adjustments)  { a.GaussianSigma = float64(p) }
func (p Laplacian) apply(a *Adjustments) { a.Laplacian = bool(p) }
func (p Equalize) apply(a *Adjustments)  { a.Equalize = EqualizeSettings(p) }
func (p Edge) apply(a *Adjustments)      { a.Edge = operator.EdgeMode(p) }
