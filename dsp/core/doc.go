// Package core holds small numeric helpers and shared constants used by the
// tremor DSP packages.
package core
