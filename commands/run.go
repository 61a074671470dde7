package commands

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sensorlog/dht-sheets/config"
	"github.com/sensorlog/dht-sheets/datalog"
	"github.com/sensorlog/dht-sheets/gsheets"
	"github.com/sensorlog/dht-sheets/sensor"
)

// RunCmd is the default command, started when dht-sheets is invoked without
// a command.
var RunCmd = Run{
	command: command{
		env: ".env",
	},
}

type Run struct {
	command
	sensor    string
	pin       *int
	interval  time.Duration
	retry     time.Duration
	retention *uint
	broker    string
	topic     string
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Logs sensor readings to a Google Sheets worksheet (default)"
}

func (cmd *Run) Usage() string {
	return "[--sensor <model>] [--pin <GPIO>] [--spreadsheet <name>] [--interval <duration>]"
}

func (cmd *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [run] [options]\n", APP)
	fmt.Println()
	fmt.Println("  Samples a DHT11/DHT22 temperature and humidity sensor and appends each reading as a")
	fmt.Println("  row (timestamp, temperature, humidity) to the first worksheet of a Google Sheets spreadsheet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s\n", APP)
	fmt.Printf("    %s --debug run --sensor dht11 --pin 17 --spreadsheet \"Greenhouse\" --interval 1m\n", APP)
	fmt.Printf("    %s run --sensor mqtt --mqtt-broker tcp://raspberrypi.local:1883 --mqtt-topic sensors/dht22\n", APP)
	fmt.Println()
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("run")
	defaults := config.Default()

	flagset.StringVar(&cmd.sensor, "sensor", cmd.sensor, fmt.Sprintf("Sensor type (dht11, dht22, am2302 or mqtt). Defaults to %v", defaults.Sensor))
	flagset.Func("pin", fmt.Sprintf("Sensor GPIO pin (BCM numbering). Defaults to %v", defaults.Pin), func(s string) error {
		pin, err := strconv.Atoi(s)
		if err != nil || pin < 0 {
			return fmt.Errorf("invalid GPIO pin '%v'", s)
		}

		cmd.pin = &pin
		return nil
	})
	flagset.DurationVar(&cmd.interval, "interval", cmd.interval, fmt.Sprintf("Polling interval between logged readings. Defaults to %v", defaults.Interval))
	flagset.DurationVar(&cmd.retry, "retry", cmd.retry, fmt.Sprintf("Delay before retrying a failed sensor read. Defaults to %v", defaults.Retry))
	flagset.Func("retention", "Readings older than 'retention' days are pruned after each login. 0 disables pruning (the default)", func(s string) error {
		days, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid retention '%v'", s)
		}

		retention := uint(days)
		cmd.retention = &retention
		return nil
	})
	flagset.StringVar(&cmd.broker, "mqtt-broker", cmd.broker, fmt.Sprintf("MQTT broker for the 'mqtt' sensor. Defaults to %v", defaults.MQTT.Broker))
	flagset.StringVar(&cmd.topic, "mqtt-topic", cmd.topic, fmt.Sprintf("MQTT topic for the 'mqtt' sensor. Defaults to %v", defaults.MQTT.Topic))

	return flagset
}

func (cmd *Run) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args)
	if err != nil {
		return err
	}

	cmd.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	source, closer, err := newSensor(cfg)
	if err != nil {
		return fmt.Errorf("unable to initialise %v sensor (%w)", cfg.Sensor, err)
	}

	defer closer()

	debugf("sensor:%v  spreadsheet:%v  interval:%v  retry:%v", source, cfg.Spreadsheet, cfg.Interval, cfg.Retry)

	loop := datalog.Loop{
		Sensor:      source,
		Store:       gsheets.NewClient(cfg.Credentials, cfg.AuthorizedUser),
		Spreadsheet: cfg.Spreadsheet,
		Interval:    cfg.Interval,
		Retry:       cfg.Retry,
		Retention:   cfg.Retention,
	}

	infof("Press Ctrl-C to quit")

	if err := loop.Run(ctx); err != nil {
		var login *datalog.LoginError
		if errors.As(err, &login) {
			warnf("%v", login.Hint())
		}

		return err
	}

	infof("Stopped logging to %v", cfg.Spreadsheet)

	return nil
}

func (cmd *Run) apply(cfg *config.Config) {
	if s := strings.TrimSpace(cmd.sensor); s != "" {
		cfg.Sensor = s
	}

	if cmd.pin != nil {
		cfg.Pin = *cmd.pin
	}

	if cmd.interval > 0 {
		cfg.Interval = cmd.interval
	}

	if cmd.retry > 0 {
		cfg.Retry = cmd.retry
	}

	if cmd.retention != nil {
		cfg.Retention = *cmd.retention
	}

	if s := strings.TrimSpace(cmd.broker); s != "" {
		cfg.MQTT.Broker = s
	}

	if s := strings.TrimSpace(cmd.topic); s != "" {
		cfg.MQTT.Topic = s
	}
}

func newSensor(cfg config.Config) (sensor.Sensor, func(), error) {
	if strings.EqualFold(strings.TrimSpace(cfg.Sensor), "mqtt") {
		m, err := sensor.NewMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, cfg.MQTT.MaxAge)
		if err != nil {
			return nil, nil, err
		}

		return m, m.Close, nil
	}

	model, err := sensor.ParseModel(cfg.Sensor)
	if err != nil {
		return nil, nil, err
	}

	dht, err := sensor.NewDHT(model, cfg.Pin)
	if err != nil {
		return nil, nil, err
	}

	return dht, func() {}, nil
}
