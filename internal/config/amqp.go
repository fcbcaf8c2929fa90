package config

import (
	"os"
	"sync"
)

type AMQPConfig struct {
	URL      string
	Exchange string
}

var (
	amqpConfig *AMQPConfig
	amqpOnce   sync.Once
)

// LoadAMQPConfig returns an empty URL when AMQP_URL is unset; events are
// then dropped.
func LoadAMQPConfig() *AMQPConfig {
	amqpOnce.Do(func() {
		exchange := os.Getenv("AMQP_EXCHANGE")
		if exchange == "" {
			exchange = "interview.events"
		}
		amqpConfig = &AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: exchange,
		}
	})
	return amqpConfig
}
