package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sensorlog/dht-sheets/log"
)

const connectTimeout = 10 * time.Second

// MQTT is a sensor source fed by a remote DHT publishing JSON readings, e.g.
//
//	{"temperature": 21.5, "humidity": 46.2}
//
// Each published reading is returned by Read at most once. Until a new message
// arrives (or if the latest one is older than maxAge) Read returns an empty
// Measurement.
type MQTT struct {
	client paho.Client
	topic  string
	maxAge time.Duration

	connected atomic.Bool
	guard     sync.Mutex
	latest    *sample
	now       func() time.Time
}

type sample struct {
	measurement Measurement
	received    time.Time
}

type payload struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

func NewMQTT(broker, clientID, topic string, maxAge time.Duration) (*MQTT, error) {
	m := &MQTT{
		topic:  topic,
		maxAge: maxAge,
		now:    time.Now,
	}

	options := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(m.onConnect).
		SetConnectionLostHandler(m.onConnectionLost)

	m.client = paho.NewClient(options)

	token := m.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		log.Warnf("MQTT broker %v not reachable yet, retrying in background", broker)
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("error connecting to MQTT broker %v (%w)", broker, err)
	}

	return m, nil
}

func (m *MQTT) Read(ctx context.Context) (Measurement, error) {
	if err := ctx.Err(); err != nil {
		return Measurement{}, err
	}

	if !m.connected.Load() {
		return Measurement{}, Transient(fmt.Errorf("not connected to MQTT broker"))
	}

	m.guard.Lock()
	defer m.guard.Unlock()

	latest := m.latest
	m.latest = nil

	if latest == nil {
		return Measurement{}, nil
	}

	if m.maxAge > 0 && m.now().Sub(latest.received) > m.maxAge {
		log.Debugf("discarding stale reading from %v (received %v)", m.topic, latest.received.Format("15:04:05"))
		return Measurement{}, nil
	}

	return latest.measurement, nil
}

func (m *MQTT) Close() {
	if m.client != nil {
		m.client.Disconnect(250)
	}
}

func (m *MQTT) String() string {
	return fmt.Sprintf("MQTT:%v", m.topic)
}

func (m *MQTT) onConnect(client paho.Client) {
	log.Infof("connected to MQTT broker, subscribing to %v", m.topic)

	token := client.Subscribe(m.topic, 1, func(_ paho.Client, msg paho.Message) {
		m.onMessage(msg.Topic(), msg.Payload())
	})

	if token.Wait(); token.Error() != nil {
		log.Errorf("error subscribing to %v (%v)", m.topic, token.Error())
		return
	}

	m.connected.Store(true)
}

func (m *MQTT) onConnectionLost(_ paho.Client, err error) {
	m.connected.Store(false)
	log.Warnf("lost connection to MQTT broker (%v)", err)
}

func (m *MQTT) onMessage(topic string, message []byte) {
	var p payload
	if err := json.Unmarshal(message, &p); err != nil {
		log.Warnf("invalid sensor reading on %v (%v)", topic, err)
		return
	}

	m.guard.Lock()
	defer m.guard.Unlock()

	m.latest = &sample{
		measurement: Measurement{
			Temperature: p.Temperature,
			Humidity:    p.Humidity,
		},
		received: m.now(),
	}
}
