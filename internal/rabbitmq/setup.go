package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// KitchenExchange обменник сообщений для кухни.
	KitchenExchange = "canteen"
	// DigestRoutingKey ключ маршрутизации сводки на завтра.
	DigestRoutingKey = "kitchen.digest"
	// KitchenQueue очередь, из которой кухня читает сводки.
	KitchenQueue = "canteen.kitchen"
)

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Topology direct-обменник и привязанные к нему очереди.
type Topology struct {
	Exchange string
	Queues   []QueueConfig
}

// KitchenTopology топология отправки сводок на кухню.
func KitchenTopology() Topology {
	return Topology{
		Exchange: KitchenExchange,
		Queues: []QueueConfig{
			{QueueName: KitchenQueue, RoutingKey: DigestRoutingKey},
		},
	}
}

// SetupChannel открывает канал и объявляет durable-обменник и очереди топологии.
func SetupChannel(conn *amqp.Connection, topology Topology) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	if err := ch.ExchangeDeclare(topology.Exchange, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range topology.Queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, topology.Exchange, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
