package commands

import (
	"testing"
	"time"

	"github.com/sensorlog/dht-sheets/config"
)

func TestRunApply(t *testing.T) {
	pin := 17
	retention := uint(7)
	cmd := Run{
		sensor:    "dht11",
		pin:       &pin,
		interval:  time.Minute,
		retention: &retention,
		topic:     "greenhouse/dht",
	}

	cfg := config.Default()
	cmd.apply(&cfg)

	if cfg.Sensor != "dht11" {
		t.Errorf("Incorrect sensor - expected:%v, got:%v", "dht11", cfg.Sensor)
	}

	if cfg.Pin != 17 {
		t.Errorf("Incorrect pin - expected:%v, got:%v", 17, cfg.Pin)
	}

	if cfg.Interval != time.Minute {
		t.Errorf("Incorrect interval - expected:%v, got:%v", time.Minute, cfg.Interval)
	}

	if cfg.Retry != config.DEFAULT_RETRY {
		t.Errorf("Incorrect retry - expected:%v, got:%v", config.DEFAULT_RETRY, cfg.Retry)
	}

	if cfg.Retention != 7 {
		t.Errorf("Incorrect retention - expected:%v, got:%v", 7, cfg.Retention)
	}

	if cfg.MQTT.Topic != "greenhouse/dht" {
		t.Errorf("Incorrect MQTT topic - expected:%v, got:%v", "greenhouse/dht", cfg.MQTT.Topic)
	}
}

func TestRunApplyWithoutFlags(t *testing.T) {
	cmd := Run{}

	cfg := config.Default()
	cmd.apply(&cfg)

	if cfg != config.Default() {
		t.Errorf("Expected unchanged configuration\n   expected: %+v\n   got:      %+v", config.Default(), cfg)
	}
}

func TestRunPinFlag(t *testing.T) {
	cmd := Run{}
	flagset := cmd.FlagSet()

	if err := flagset.Parse([]string{"--pin", "22"}); err != nil {
		t.Fatalf("Unexpected error parsing flags (%v)", err)
	}

	if cmd.pin == nil || *cmd.pin != 22 {
		t.Errorf("Incorrect pin - expected:%v, got:%v", 22, cmd.pin)
	}
}

func TestNewSensorWithUnknownModel(t *testing.T) {
	cfg := config.Default()
	cfg.Sensor = "bme280"

	if _, _, err := newSensor(cfg); err == nil {
		t.Errorf("Expected error for unsupported sensor")
	}
}

func TestRunRetentionFlagOverridesEnvironment(t *testing.T) {
	cmd := Run{}
	flagset := cmd.FlagSet()

	if err := flagset.Parse([]string{"--retention", "0"}); err != nil {
		t.Fatalf("Unexpected error parsing flags (%v)", err)
	}

	cfg := config.Default()
	cfg.Retention = 30
	cmd.apply(&cfg)

	if cfg.Retention != 0 {
		t.Errorf("Incorrect retention - expected:%v, got:%v", 0, cfg.Retention)
	}
}

func TestRunRetentionFlagNotSet(t *testing.T) {
	cmd := Run{}
	flagset := cmd.FlagSet()

	if err := flagset.Parse([]string{"--pin", "22"}); err != nil {
		t.Fatalf("Unexpected error parsing flags (%v)", err)
	}

	cfg := config.Default()
	cfg.Retention = 30
	cmd.apply(&cfg)

	if cfg.Retention != 30 {
		t.Errorf("Incorrect retention - expected:%v, got:%v", 30, cfg.Retention)
	}
}
