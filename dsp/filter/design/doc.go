// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: the RBJ second-order [Lowpass]
// and the [ButterworthLP] cascade built from it. [LowpassCascade] adds
// validation so callers get an error instead of silently unusable sections.
package design
