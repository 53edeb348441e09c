package metrics

// MiningStats captures the proof-of-work effort spent sealing one block.
type MiningStats struct {
	Attempts  uint64 `json:"attempts"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// IsZero reports whether no mining effort was recorded.
func (m MiningStats) IsZero() bool {
	return m.Attempts == 0 && m.ElapsedMs == 0
}
