// Package detrend removes slow drift from motion series.
//
// The filter is a causal moving-average high-pass: every output sample is the
// input minus the mean of the last K inputs ending at that index. At the start
// of the series the window shrinks so no samples before index 0 are assumed.
//
//	out[t] = x[t] - mean(x[max(0, t-K+1) .. t])
//
// Hand settling and lighting changes show up as low-frequency energy that
// would otherwise dominate the lowest spectral bins.
package detrend
