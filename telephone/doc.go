// Package telephone simulates the "telephone game" on an audio clip.
//
// A clean sine [Generate]d from a [Config] is passed through a [Degrader]
// repeatedly by a [Driver]: every stage low-passes, adds noise and blends in a
// pitch-drifted reference tone, feeding its output to the next stage. Each
// waveform is persisted through a [Store] under a [StageID]. [Analyze] reduces
// a waveform to RMS energy and dominant frequency, and a [Trend] of those
// values is handed to a [Plotter].
//
// [Pipeline] composes these pieces into the generate, analyze and combined
// invocation modes.
package telephone
