// Package batch provides a micro-batching commit queue: values collected
// within a fixed window are applied together in one call.
//
// The toast center funnels store snapshots through a committer so a burst
// of admissions produces a single feed publication rather than one per
// mutation, mirroring how UI layers debounce re-renders.
package batch
