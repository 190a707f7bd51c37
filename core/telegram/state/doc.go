// Package state keeps per-user conversation sessions for Telegram bots.
// Values are opaque to the store; a missing entry means the user is idle.
package state
