// Package history normalises a raw event stream from a distributed-systems
// test harness into the single, globally time-ordered sequence the checker
// package expects.
//
// The harness contract this package relies on: within the input, the
// events of each client "thread" (process mod concurrency) already appear
// in time order. Normalize performs the rest: filtering out event kinds
// the checker does not model, bucketing the remaining events by thread,
// and a bounded K-way merge across threads. Since the
// number of threads is a small, fixed test parameter, a linear scan across
// thread heads is used in place of a priority queue; this is O(n) in
// practice even though it is O(n*C) in the worst case.
//
// This package never retains its input after Normalize returns, and
// performs no I/O; reading the raw event stream off the wire is the
// caller's concern (see cmd/casreg for a JSON-based example).
package history
