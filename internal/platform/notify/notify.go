// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify dispatches outbound user notifications through RabbitMQ.

The API server never talks SMTP itself: confirmation-code mail is published as
a JSON message to a durable queue and delivered by a separate mail worker.
Publishing is best-effort: a broker outage must never fail the signup request
that triggered the notification; the caller logs the error and the user can
request a resend.
*/
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MailQueue is the durable queue consumed by the mail worker.
const MailQueue = "email.confirmation"

// Mail is the message contract published to [MailQueue].
type Mail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Dispatcher sends a notification to a recipient address. Implementations
// must be safe for concurrent use.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # AMQP Implementation

// AMQPDispatcher publishes mail messages to RabbitMQ.
type AMQPDispatcher struct {
	channel *amqp.Channel
	conn    *amqp.Connection
	from    string
	logger  *slog.Logger
}

// NewAMQPDispatcher dials the broker, declares the durable mail queue, and
// returns a ready dispatcher. The connection is held for the process
// lifetime; call [AMQPDispatcher.Close] during shutdown.
func NewAMQPDispatcher(url, from string, logger *slog.Logger) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to dial broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: failed to open channel: %w", err)
	}

	// Durable so queued mail survives broker restarts.
	if _, err := channel.QueueDeclare(MailQueue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: failed to declare queue: %w", err)
	}

	logger.Info("amqp dispatcher connected", slog.String("queue", MailQueue))

	return &AMQPDispatcher{
		channel: channel,
		conn:    conn,
		from:    from,
		logger:  logger,
	}, nil
}

// Send publishes one mail message to the queue. Messages are marked
// persistent so the broker stores them on disk until the worker acks.
func (dispatcher *AMQPDispatcher) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(Mail{
		From:    dispatcher.from,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("notify: failed to marshal mail: %w", err)
	}

	err = dispatcher.channel.PublishWithContext(ctx,
		"",        // default exchange
		MailQueue, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("notify: publish failed: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (dispatcher *AMQPDispatcher) Close() error {
	if err := dispatcher.channel.Close(); err != nil {
		dispatcher.logger.Error("amqp channel close error", slog.Any("error", err))
	}
	return dispatcher.conn.Close()
}

// # Log Fallback

// LogDispatcher writes notifications to the structured log instead of a
// broker. Used in development when AMQP_URL is not configured.
type LogDispatcher struct {
	Logger *slog.Logger
}

// Send logs the would-be mail at INFO level.
func (dispatcher *LogDispatcher) Send(ctx context.Context, to, subject, body string) error {
	dispatcher.Logger.InfoContext(ctx, "mail_dispatch_skipped",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
