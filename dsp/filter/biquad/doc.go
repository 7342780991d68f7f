// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters. [FiltFilt] runs a chain
// forward and backward over a whole signal for zero-phase filtering.
//
// Coefficient design lives in dsp/filter/design.
package biquad
