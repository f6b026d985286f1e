package rabbitmq_client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"zakatbackend/types"
)

// Connection and Channel stay nil when RABBITMQ_SERVER is unset; SendMessage
// is then a no-op.
var (
	Connection *amqp.Connection
	Channel    *amqp.Channel
	Queue      amqp.Queue
)

// GetEnv retrieves the environment variable with a default value if not set.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func Close() {
	if Channel != nil {
		Channel.Close()
	}
	if Connection != nil {
		Connection.Close()
	}
}

func SendMessage(event types.ZakatbackendEvent) {
	if Channel == nil {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("Error marshalling rabbitmq event: ", zap.Any("error", err.Error()))
		return
	}

	zap.L().Sugar().Infof("Sending message to rabbitmq: %s", message)

	err = Channel.Publish(
		"",         // Exchange (empty means default)
		Queue.Name, // Routing key (queue name in this case)
		false,      // Mandatory
		false,      // Immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		})
	if err != nil {
		zap.L().Error("Error publishing message to rabbitmq: ", zap.Any("error", err.Error()))
		return
	}

	zap.L().Info("Successfully sent message to rabbitmq.")
}

func init() {
	rabbitServer := os.Getenv("RABBITMQ_SERVER")
	if rabbitServer == "" {
		return
	}

	rabbitPort := GetEnv("RABBITMQ_PORT", "5672")
	rabbitUser := GetEnv("RABBITMQ_USER", "guest")
	rabbitPass := GetEnv("RABBITMQ_PASS", "guest")

	newConn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s:%s/", rabbitUser, rabbitPass, rabbitServer, rabbitPort))
	if err != nil {
		zap.L().Error("RabbitMQ initialization failed: ", zap.Any("error", err.Error()))
		return
	}
	Connection = newConn

	ch, err := Connection.Channel()
	if err != nil {
		zap.L().Error("RabbitMQ - Failed to open a channel: ", zap.Any("error", err.Error()))
		return
	}
	Channel = ch

	q, err := ch.QueueDeclare(
		"zakatbackend", // Name of the queue
		true,           // Durable
		false,          // Delete when unused
		false,          // Exclusive
		false,          // No-wait
		nil,            // Arguments
	)
	if err != nil {
		zap.L().Error("RabbitMQ - Failed to declare a queue: ", zap.Any("error", err.Error()))
		return
	}
	Queue = q

	zap.L().Info("Connected to RabbitMQ.")
}
