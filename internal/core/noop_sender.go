package core

import "github.com/KaavyaOfficial/momentum-fc/pkg/logger"

// NoopSender stands in when Kafka publishing is disabled. It drains the
// event stream so the engine never blocks on a full buffer.
type NoopSender struct {
	logger *logger.Logger
	events <-chan []byte
}

func NewNoopSender(l *logger.Logger, events <-chan []byte) *NoopSender {
	return &NoopSender{logger: l, events: events}
}

func (ns *NoopSender) Send(data []byte, topic *string) {}

func (ns *NoopSender) Start(topic string) {
	ns.logger.Info("Kafka disabled, events are discarded")
	for range ns.events {
	}
}

func (ns *NoopSender) Stop() {}
