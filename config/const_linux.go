package config

const (
	DEFAULT_SENSOR      = "dht22"
	DEFAULT_MQTT_BROKER = "tcp://localhost:1883"
)
