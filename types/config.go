package types

import (
	"time"

	"uicode-go/errcode"
)

// UIConfig mirrors the "ui" object of the embedded device config. It arrives
// on the bus as a generic JSON map; ParseUIConfig fills in defaults for
// absent keys.
type UIConfig struct {
	StartScreen      ScreenID
	VoltLow          float32
	VoltHigh         float32
	AveragingWindow  int
	BacklightTimeout time.Duration
	DebugLog         bool
}

// DefaultUIConfig is used when no embedded config reaches the UI in time.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		StartScreen:      1,
		VoltLow:          3.3,
		VoltHigh:         4.2,
		AveragingWindow:  6,
		BacklightTimeout: 30 * time.Second,
	}
}

// ParseUIConfig decodes a config payload (map[string]any from the config
// service) on top of the defaults.
func ParseUIConfig(v any) (UIConfig, error) {
	cfg := DefaultUIConfig()
	m, ok := v.(map[string]any)
	if !ok {
		return cfg, errcode.ConfigInvalid
	}
	if f, ok := num(m["start_screen"]); ok {
		cfg.StartScreen = ScreenID(f)
	}
	if f, ok := num(m["volt_low"]); ok {
		cfg.VoltLow = float32(f)
	}
	if f, ok := num(m["volt_high"]); ok {
		cfg.VoltHigh = float32(f)
	}
	if f, ok := num(m["averaging_window"]); ok && int(f) > 0 {
		cfg.AveragingWindow = int(f)
	}
	if f, ok := num(m["backlight_timeout_s"]); ok && f > 0 {
		cfg.BacklightTimeout = time.Duration(f * float64(time.Second))
	}
	if b, ok := m["debug_log"].(bool); ok {
		cfg.DebugLog = b
	}
	if cfg.VoltHigh <= cfg.VoltLow {
		return cfg, errcode.ConfigInvalid
	}
	return cfg, nil
}

// SensorsConfig mirrors the "sensors" object of the embedded device config.
type SensorsConfig struct {
	Period time.Duration
}

func DefaultSensorsConfig() SensorsConfig {
	return SensorsConfig{Period: 5 * time.Second}
}

func ParseSensorsConfig(v any) (SensorsConfig, error) {
	cfg := DefaultSensorsConfig()
	m, ok := v.(map[string]any)
	if !ok {
		return cfg, errcode.ConfigInvalid
	}
	if f, ok := num(m["period_s"]); ok && f > 0 {
		cfg.Period = time.Duration(f * float64(time.Second))
	}
	return cfg, nil
}

// num accepts the numeric shapes a generic JSON decode can produce.
func num(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
