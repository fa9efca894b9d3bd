// Package spectrum estimates band-limited power spectra of short, noisy
// motion series.
//
// Three strategies are tried in a fixed order by [Estimator]; the first one
// that produces usable power wins:
//
//   - [Autocorrelation]: finds periodicities in the normalized
//     autocorrelation and synthesizes a smooth spectrum from them. Preferred
//     because it is less sensitive to noise on short buffers.
//   - [Welch]: averages windowed (Hann by default), 50% overlapping segment
//     periodograms.
//     Segments are transformed with [FFT] and fall back to [DFT] when the fast
//     path rejects the input.
//   - [Synthetic]: a deterministic bump at 5 Hz, marking a degenerate input.
//
// Every returned [Spectrum] is restricted to the tremor band
// [core.MinHz, core.MaxHz]. The estimator never returns an error; the failed
// attempts are reported alongside the winning [Method].
package spectrum
