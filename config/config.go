package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DEFAULT_SPREADSHEET = "DHT22"
	DEFAULT_PIN         = 4
	DEFAULT_INTERVAL    = 30 * time.Second
	DEFAULT_RETRY       = 2 * time.Second
	DEFAULT_MQTT_TOPIC  = "sensors/dht22"
	DEFAULT_MQTT_AGE    = 5 * time.Minute
)

type Config struct {
	Sensor         string
	Pin            int
	Spreadsheet    string
	Interval       time.Duration
	Retry          time.Duration
	Retention      uint
	Credentials    string
	AuthorizedUser string
	MQTT           MQTT
}

type MQTT struct {
	Broker   string
	Topic    string
	ClientID string
	MaxAge   time.Duration
}

// Default returns the compiled-in configuration. The credentials files default to
// ~/.config/gspread.
func Default() Config {
	dir := credentialsDir()

	return Config{
		Sensor:         DEFAULT_SENSOR,
		Pin:            DEFAULT_PIN,
		Spreadsheet:    DEFAULT_SPREADSHEET,
		Interval:       DEFAULT_INTERVAL,
		Retry:          DEFAULT_RETRY,
		Credentials:    filepath.Join(dir, "credentials.json"),
		AuthorizedUser: filepath.Join(dir, "authorized_user.json"),
		MQTT: MQTT{
			Broker:   DEFAULT_MQTT_BROKER,
			Topic:    DEFAULT_MQTT_TOPIC,
			ClientID: "dht-sheets",
			MaxAge:   DEFAULT_MQTT_AGE,
		},
	}
}

// Load reads the optional .env file (a missing file is not an error) and then
// applies any DHT_SHEETS_* environment variables to the defaults.
func Load(envfile string) (Config, error) {
	c := Default()

	if envfile != "" {
		if err := godotenv.Load(envfile); err != nil && !os.IsNotExist(err) {
			return c, fmt.Errorf("error loading %v (%w)", envfile, err)
		}
	}

	return c, c.FromEnv()
}

// FromEnv overrides the configuration with DHT_SHEETS_* environment variables.
func (c *Config) FromEnv() error {
	str := func(key string, v *string) {
		if s := strings.TrimSpace(os.Getenv(key)); s != "" {
			*v = s
		}
	}

	duration := func(key string, v *time.Duration) error {
		if s := strings.TrimSpace(os.Getenv(key)); s != "" {
			if d, err := parseDuration(s); err != nil {
				return fmt.Errorf("invalid %v '%v' (%w)", key, s, err)
			} else {
				*v = d
			}
		}

		return nil
	}

	str("DHT_SHEETS_SENSOR", &c.Sensor)
	str("DHT_SHEETS_SPREADSHEET", &c.Spreadsheet)
	str("DHT_SHEETS_CREDENTIALS", &c.Credentials)
	str("DHT_SHEETS_AUTHORIZED_USER", &c.AuthorizedUser)
	str("DHT_SHEETS_MQTT_BROKER", &c.MQTT.Broker)
	str("DHT_SHEETS_MQTT_TOPIC", &c.MQTT.Topic)
	str("DHT_SHEETS_MQTT_CLIENT_ID", &c.MQTT.ClientID)

	if s := strings.TrimSpace(os.Getenv("DHT_SHEETS_PIN")); s != "" {
		if pin, err := strconv.Atoi(s); err != nil || pin < 0 {
			return fmt.Errorf("invalid DHT_SHEETS_PIN '%v'", s)
		} else {
			c.Pin = pin
		}
	}

	if s := strings.TrimSpace(os.Getenv("DHT_SHEETS_RETENTION")); s != "" {
		if days, err := strconv.ParseUint(s, 10, 32); err != nil {
			return fmt.Errorf("invalid DHT_SHEETS_RETENTION '%v'", s)
		} else {
			c.Retention = uint(days)
		}
	}

	if err := duration("DHT_SHEETS_INTERVAL", &c.Interval); err != nil {
		return err
	}

	if err := duration("DHT_SHEETS_RETRY", &c.Retry); err != nil {
		return err
	}

	if err := duration("DHT_SHEETS_MQTT_MAX_AGE", &c.MQTT.MaxAge); err != nil {
		return err
	}

	return nil
}

// Validate checks the fields the sampling loop cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Spreadsheet) == "" {
		return fmt.Errorf("spreadsheet name is required")
	}

	if c.Interval <= 0 {
		return fmt.Errorf("invalid polling interval (%v)", c.Interval)
	}

	if c.Retry <= 0 {
		return fmt.Errorf("invalid retry delay (%v)", c.Retry)
	}

	if strings.TrimSpace(c.Credentials) == "" {
		return fmt.Errorf("credentials file is required")
	}

	return nil
}

// parseDuration accepts either a Go duration ("30s", "1m") or a plain number
// of seconds.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseUint(s, 10, 32); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	} else if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}

	return d, nil
}

func credentialsDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "gspread")
	}

	return filepath.Join(".config", "gspread")
}
