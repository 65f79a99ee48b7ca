package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/canteen/internal/lib/sl"
)

// ConsumeMessages читает очередь до отмены ctx. Сообщение подтверждается, если
// handler вернул nil, иначе отклоняется без возврата в очередь.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumeMessages"
	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}
			if err := handler(d.Body); err != nil {
				log.Error("failed to handle message", slog.String("op", op), sl.Err(err))
				if nackErr := d.Nack(false, false); nackErr != nil {
					log.Error("failed to nack message", slog.String("op", op), sl.Err(nackErr))
				}
				continue
			}
			if ackErr := d.Ack(false); ackErr != nil {
				log.Error("failed to ack message", slog.String("op", op), sl.Err(ackErr))
			}
		}
	}
}
