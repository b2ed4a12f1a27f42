// Package feed provides a generic non-blocking fan-out of state snapshots
// to multiple subscribers.
//
// Unlike a message bus, a feed carries state, not events: when a subscriber
// falls behind, the oldest pending snapshot is discarded in favor of the
// newest (latest-wins). Publishers never block on slow consumers.
//
// The toast center publishes a snapshot of its visible notifications after
// every commit window; UI transports (SSE, WebSocket) subscribe and render
// whatever snapshot arrives.
package feed
