// Package metrics provides lightweight runtime counters. Counters use
// sync/atomic so the per-turn hot path never takes a lock.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds all runtime counters for a running assistant instance.
type Metrics struct {
	SessionsStarted atomic.Int64
	Turns           atomic.Int64
	HandledLocally  atomic.Int64

	GatewayCalls     atomic.Int64
	GatewayFailures  atomic.Int64
	GatewayFallbacks atomic.Int64

	PlaceholdersReplaced   atomic.Int64
	PlaceholdersReinserted atomic.Int64

	startTime time.Time
}

func New() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// Snapshot returns a point-in-time copy of all counters, safe for JSON
// encoding.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Conversations: ConversationSnapshot{
			SessionsStarted: m.SessionsStarted.Load(),
			Turns:           m.Turns.Load(),
			HandledLocally:  m.HandledLocally.Load(),
		},
		Gateway: GatewaySnapshot{
			Calls:     m.GatewayCalls.Load(),
			Failures:  m.GatewayFailures.Load(),
			Fallbacks: m.GatewayFallbacks.Load(),
		},
		Placeholders: PlaceholderSnapshot{
			Replaced:   m.PlaceholdersReplaced.Load(),
			Reinserted: m.PlaceholdersReinserted.Load(),
		},
		UptimeSecs: time.Since(m.startTime).Seconds(),
	}
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	Conversations ConversationSnapshot `json:"conversations"`
	Gateway       GatewaySnapshot      `json:"gateway"`
	Placeholders  PlaceholderSnapshot  `json:"placeholders"`
	UptimeSecs    float64              `json:"uptimeSecs"`
}

// ConversationSnapshot holds session and turn counters.
type ConversationSnapshot struct {
	SessionsStarted int64 `json:"sessionsStarted"`
	Turns           int64 `json:"turns"`
	HandledLocally  int64 `json:"handledLocally"`
}

// GatewaySnapshot holds outbound model call counters.
type GatewaySnapshot struct {
	Calls     int64 `json:"calls"`
	Failures  int64 `json:"failures"`
	Fallbacks int64 `json:"fallbacks"`
}

// PlaceholderSnapshot holds PII token volume counters.
type PlaceholderSnapshot struct {
	Replaced   int64 `json:"replaced"`
	Reinserted int64 `json:"reinserted"`
}
