// Package publisher pushes sensor events to an MQTT broker for home
// automation consumers.
package publisher

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/openlinky/linky_tic/pkg/config"
	"github.com/openlinky/linky_tic/pkg/sensor"
)

// Publisher wraps one MQTT client. Events go to <topic_prefix>/<sensor>
// with QoS 0: readings repeat every meter frame, a lost one is replaced
// within seconds.
type Publisher struct {
	client mqtt.Client
	prefix string
	log    *zap.SugaredLogger
}

func New(cfg config.MQTTConfig, log *zap.SugaredLogger) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("publisher: connect %s: %w", cfg.BrokerURL, token.Error())
	}
	log.Infow("connected to mqtt broker", "broker", cfg.BrokerURL, "client_id", cfg.ClientID)

	return &Publisher{
		client: client,
		prefix: cfg.TopicPrefix,
		log:    log,
	}, nil
}

func (p *Publisher) PublishEvent(ev sensor.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorw("event marshal failed", "sensor", ev.Sensor, "error", err)
		return
	}
	topic := p.prefix + "/" + ev.Sensor
	if token := p.client.Publish(topic, 0, false, payload); token.Wait() && token.Error() != nil {
		p.log.Warnw("mqtt publish failed", "topic", topic, "error", token.Error())
	}
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
