package types

// Reading is one sensor sample, published retained on sensors/<name>/value.
type Reading struct {
	Value float32 `json:"value"`
	TSms  int64   `json:"ts_ms"`
}
