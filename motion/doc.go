// Package motion turns tracked point positions into motion-energy series.
//
// A [Session] scopes all per-window state: the shared frame timestamps, one
// series per tracked [Landmark] and the previous sample of every point. Each
// new recording starts from [Session.Start], which discards everything from
// the previous window.
package motion
