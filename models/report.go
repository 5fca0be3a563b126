package models

// AgentReport is the normalized output of one scoring agent.
// Score is always finite and within [-1, 1]. Metadata is an opaque mapping
// used for cross-agent data passing (e.g. the Risk Officer's max_weight).
type AgentReport struct {
	AgentName string                 `json:"agent_name"`
	Symbol    string                 `json:"symbol"`
	Score     float64                `json:"score"`
	Rationale string                 `json:"rationale"`
	Metadata  map[string]interface{} `json:"metadata"`
}
