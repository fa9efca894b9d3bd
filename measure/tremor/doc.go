// Package tremor turns a completed capture window into a tremor estimate.
//
// For every tracked point the motion series is detrended, its spectrum is
// estimated and the dominant peak is extracted. Peaks above the significance
// threshold are combined into one power-weighted frequency, which is mapped
// to a coarse clinical class:
//
//	< 4 Hz    resting (parkinsonian-type)
//	4..7 Hz   essential tremor
//	>= 7 Hz   physiological/anxiety tremor
//
// Failures are contained per point: a series that is too short is skipped
// and a degenerate one falls back to the synthetic spectrum. Only a window
// with too few frames aborts the analysis.
package tremor
