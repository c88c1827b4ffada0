// Package worker consumes the notifications the API publishes after each
// committed create.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/pkg/mailer"
)

// ErrMalformed marks a message that can never be processed and should be dropped.
var ErrMalformed = errors.New("malformed notification")

// Sender delivers a rendered e-mail. *mailer.Mailgun satisfies it.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// Notifier turns notifications into side effects. Only dispatches trigger
// an e-mail; other types are logged.
type Notifier struct {
	Mail   Sender
	To     string
	Logger *logrus.Logger
}

// Handle processes one decoded notification.
func (n *Notifier) Handle(ctx context.Context, note entity.Notification) error {
	log := n.Logger.WithFields(logrus.Fields{"type": note.Type, "id": note.ID, "actor": note.Actor})
	if note.Type != entity.NotifyDispatchCreated {
		log.Info("notification received")
		return nil
	}
	if n.Mail == nil || n.To == "" {
		log.Info("dispatch notice skipped, mail disabled")
		return nil
	}

	var d entity.Dispatch
	if err := json.Unmarshal(note.Payload, &d); err != nil {
		return fmt.Errorf("%w: dispatch payload: %v", ErrMalformed, err)
	}
	msg, err := mailer.DispatchNotice(n.To, note.Actor, note.OccurredAt, d)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	id, err := n.Mail.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send dispatch notice: %w", err)
	}
	log.WithField("mail_id", id).Info("dispatch notice sent")
	return nil
}

// Consume handles deliveries until ctx is done or the channel closes.
// Malformed messages are dropped; send failures are requeued.
func (n *Notifier) Consume(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			n.deliver(ctx, d)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, d amqp.Delivery) {
	var note entity.Notification
	err := json.Unmarshal(d.Body, &note)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformed, err)
	} else {
		if note.Type == "" {
			note.Type = d.Type
		}
		err = n.Handle(ctx, note)
	}

	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrMalformed):
		n.Logger.WithError(err).WithField("delivery_tag", d.DeliveryTag).Warn("dropping notification")
		_ = d.Nack(false, false)
	default:
		n.Logger.WithError(err).WithField("delivery_tag", d.DeliveryTag).Error("notification failed, requeueing")
		_ = d.Nack(false, true)
	}
}
