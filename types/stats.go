package types

// MaxDiagnostics bounds the per-item diagnostic sample kept in stats; the
// skip counter itself is never capped.
const MaxDiagnostics = 20

type ItemDiagnostic struct {
	Identifier string `json:"identifier,omitempty"`
	Reason     string `json:"reason"`
}

type TransformStats struct {
	Input       int
	Emitted     int
	Skipped     int
	Diagnostics []ItemDiagnostic
}

func (stats *TransformStats) AddSkip(identifier, reason string) {
	stats.Skipped++
	if len(stats.Diagnostics) < MaxDiagnostics {
		stats.Diagnostics = append(stats.Diagnostics, ItemDiagnostic{Identifier: identifier, Reason: reason})
	}
}
