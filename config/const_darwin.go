package config

// No GPIO on macOS so the default sensor is a DHT22 publishing over MQTT.
const (
	DEFAULT_SENSOR      = "mqtt"
	DEFAULT_MQTT_BROKER = "tcp://raspberrypi.local:1883"
)
