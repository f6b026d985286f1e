package kafka_client

import (
	"encoding/json"
	"os"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"

	"zakatbackend/types"
)

// KafkaProducer stays nil when KAFKA_BOOTSTRAPSERVERS is unset; SendMessage
// is then a no-op.
var (
	KafkaProducer *kafka.Producer
)

func SendMessage(event types.ZakatbackendEvent) {
	if KafkaProducer == nil {
		return
	}

	topic := os.Getenv("KAFKA_TOPIC")
	message, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("Error marshalling kafka event: ", zap.Any("error", err.Error()))
		return
	}

	zap.L().Sugar().Infof("Sending message to kafka: %s", message)
	err = KafkaProducer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          message,
	}, nil)
	if err != nil {
		zap.L().Error("Error sending message to kafka: ", zap.Any("error", err.Error()))
	}
}

func init() {
	bootstrapServers := os.Getenv("KAFKA_BOOTSTRAPSERVERS")
	if bootstrapServers == "" {
		return
	}

	newProducer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"client.id":         "zakatbackend",
		"acks":              "all",
	})
	if err != nil {
		zap.L().Error("Kafka Producer initialization failed: ", zap.Any("error", err.Error()))
		return
	}
	KafkaProducer = newProducer

	// Delivery report handler for produced messages
	go func() {
		for e := range KafkaProducer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					zap.L().Error("Kafka Delivery failed: ", zap.Any("error", ev.TopicPartition.Error.Error()))
				} else {
					zap.L().Sugar().Infof("Delivered message to %s", *ev.TopicPartition.Topic)
				}
			}
		}
	}()

	zap.L().Info("Connected to Kafka")
}
