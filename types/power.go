package types

// PowerStatus is the retained power state published on power/status after
// every battery sampling round and on low-battery entry.
type PowerStatus struct {
	Volt       float32 `json:"volt"`
	SoC        float32 `json:"soc"`
	LowBattery bool    `json:"low_battery"`
	TSms       int64   `json:"ts_ms"`
}
