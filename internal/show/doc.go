// Package show defines the values a weekly lineup is built from.
//
// A Day is one of seven fixed slots with a canonical Monday-first order.
// A Show is an immutable value with a description and a running time.
// The Empty sentinel marks a slot with nothing scheduled:
//
//	m, _ := show.NewMovie("Casablanca", 102)
//	show.IsEmpty(m)          // false
//	show.IsEmpty(show.Empty) // true
//
// Composite shows (Introduced, DoubleBill) wrap other shows and remain
// comparable as long as the shows they wrap are.
package show
