// Package scheduler runs the periodic housekeeping of a long running front
// end. It drops idle sessions and compacts the value log of the local store.
package scheduler
