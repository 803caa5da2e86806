package core

import (
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/KaavyaOfficial/momentum-fc/internal/options"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

// SenderKafka publishes the engine's lifecycle events to a Kafka topic so
// downstream consumers can mirror match and snapshot state.
type SenderKafka struct {
	logger   *logger.Logger
	producer *kafka.Producer
	events   <-chan []byte
}

func NewSenderKafka(l *logger.Logger, opts *options.Options, events <-chan []byte) *SenderKafka {
	addr := opts.KafkaAddress + ":" + opts.KafkaPort
	l.Info("Kafka address: ", addr)
	kconf := &kafka.ConfigMap{
		"bootstrap.servers": addr,
		"client.id":         "momentum-fc",
		"acks":              "all",
	}
	p, err := kafka.NewProducer(kconf)
	if err != nil {
		l.Fatal("Failed to create kafka producer: ", err)
	}

	return &SenderKafka{logger: l, producer: p, events: events}
}

func (sk *SenderKafka) Send(data []byte, topic *string) {
	msg := kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: topic, Partition: kafka.PartitionAny},
		Value:          data,
	}

	err := sk.producer.Produce(&msg, nil)
	if err != nil {
		if err.(kafka.Error).Code() == kafka.ErrQueueFull {
			sk.logger.Error("Kafka queue full, backing off")
			time.Sleep(time.Millisecond * 200)
		} else {
			sk.logger.Error("Kafka error: ", err)
		}
	}
}

// Start drains the event stream into the topic until the stream closes.
func (sk *SenderKafka) Start(topic string) {
	sk.logger.Info("Starting kafka sender, topic: ", topic)
	go sk.listenEvent()

	for data := range sk.events {
		sk.Send(data, &topic)
	}
}

func (sk *SenderKafka) Stop() {
	sk.producer.Close()
}

func (sk *SenderKafka) listenEvent() {
	for e := range sk.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				sk.logger.Error("Delivery failed: " + ev.TopicPartition.Error.Error())
			}
		case kafka.Error:
			sk.logger.Error("Kafka error: " + ev.Error())
		default:
			//skip
		}
	}
}
