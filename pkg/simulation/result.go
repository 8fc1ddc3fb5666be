package simulation

import (
	"lintang/congestionnav/pkg/agent"
)

type AgentMetrics struct {
	Type          string  `json:"type"`
	Arrived       bool    `json:"arrived"`
	Moves         int     `json:"moves"`
	Dist          float64 `json:"dist"`
	Replans       int     `json:"replans"`
	ProcessTimeNs int64   `json:"process_time_ns"`
	PathLen       int     `json:"path_len"`
}

// RoundResult summary of one agent pair run. StartLat/StartLon locate the round for storage.
type RoundResult struct {
	RunID     string         `json:"run_id"`
	Round     int            `json:"round"`
	Start     int64          `json:"start"`
	End       int64          `json:"end"`
	StartLat  float64        `json:"start_lat"`
	StartLon  float64        `json:"start_lon"`
	Ticks     int            `json:"ticks"`
	Completed bool           `json:"completed"`
	Agents    []AgentMetrics `json:"agents"`
}

func agentMetrics(a *agent.Agent) AgentMetrics {
	m := a.Metrics()
	return AgentMetrics{
		Type:          a.Type().String(),
		Arrived:       a.Arrived(),
		Moves:         m.Moves,
		Dist:          m.Dist,
		Replans:       m.Replans,
		ProcessTimeNs: m.ProcessTime.Nanoseconds(),
		PathLen:       len(a.Path()),
	}
}
