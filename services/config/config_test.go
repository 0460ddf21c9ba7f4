package config

import (
	"context"
	"testing"
	"time"

	"uicode-go/bus"
	"uicode-go/types"
)

func TestPublishConfigRetained(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("test")

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "handheld")
	s := NewService()
	if err := s.publishConfig(ctx, conn); err != nil {
		t.Fatalf("publishConfig: %v", err)
	}

	// Retained: a late subscriber still sees it.
	sub := conn.Subscribe(bus.T("config", "ui"))
	select {
	case msg := <-sub.Channel():
		cfg, err := types.ParseUIConfig(msg.Payload)
		if err != nil {
			t.Fatalf("ParseUIConfig: %v", err)
		}
		if cfg.StartScreen != 1 || cfg.VoltLow != 3.3 || cfg.VoltHigh != 4.2 {
			t.Errorf("unexpected ui config: %+v", cfg)
		}
		if cfg.BacklightTimeout != 30*time.Second {
			t.Errorf("backlight timeout = %v", cfg.BacklightTimeout)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no retained config/ui message")
	}

	sub2 := conn.Subscribe(bus.T("config", "sensors"))
	select {
	case msg := <-sub2.Channel():
		cfg, err := types.ParseSensorsConfig(msg.Payload)
		if err != nil {
			t.Fatalf("ParseSensorsConfig: %v", err)
		}
		if cfg.Period != 5*time.Second {
			t.Errorf("sensors period = %v", cfg.Period)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no retained config/sensors message")
	}
}

func TestPublishConfigUnknownDevice(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	s := NewService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "nope")
	if err := s.publishConfig(ctx, conn); err == nil {
		t.Error("unknown device must error")
	}
	if err := s.publishConfig(context.Background(), conn); err == nil {
		t.Error("missing device ID must error")
	}
}

func TestEmbeddedConfigLookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	defer func() { EmbeddedConfigLookup = old }()
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		return []byte(`{"ui": {"start_screen": 3, "volt_low": 3.0, "volt_high": 4.0}}`), true
	}

	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	ctx := context.WithValue(context.Background(), CtxDeviceKey, "anything")
	if err := NewService().publishConfig(ctx, conn); err != nil {
		t.Fatalf("publishConfig: %v", err)
	}

	sub := conn.Subscribe(bus.T("config", "ui"))
	select {
	case msg := <-sub.Channel():
		cfg, err := types.ParseUIConfig(msg.Payload)
		if err != nil {
			t.Fatalf("ParseUIConfig: %v", err)
		}
		if cfg.StartScreen != 3 {
			t.Errorf("start screen = %d, want 3", cfg.StartScreen)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no retained config/ui message")
	}
}
