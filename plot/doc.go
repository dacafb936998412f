// Package plot adapts projection snapshots to a rendering surface.
//
// A Board holds the snapshot currently on screen. Apply swaps a new snapshot
// in only when it matches the space, so a rejected or failed projection
// leaves the previous layout intact. Hosts implement Sink to receive points.
// Board is not safe for concurrent use.
package plot
