// Package spectrum provides FFT-based spectrum utilities for offline analysis.
//
// [OneSided] computes the exact-length real DFT so bin spacing is
// sampleRate/len(x). [PaddedMagnitude] zero-pads to the next power of two
// for descriptors that do not need exact bin placement. Magnitude and peak
// helpers operate on the resulting bins.
//
// [OneSided] accepts any length; lengths that are not a power of two go
// through a chirp-z transform.
package spectrum
