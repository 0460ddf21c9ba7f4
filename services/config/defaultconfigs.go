package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgHandheld = `{
  "ui": {
      "start_screen": 1,
      "volt_low": 3.3,
      "volt_high": 4.2,
      "averaging_window": 6,
      "backlight_timeout_s": 30
  },
  "sensors": {
      "period_s": 5
  }
}`

var embeddedConfigs = map[string][]byte{
	"handheld": []byte(cfgHandheld),
}
