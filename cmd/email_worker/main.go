package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/config"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/mailer"
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string, tags ...string) (string, error)
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type outcome int

const (
	ack outcome = iota
	drop
	retry
)

// handle renders and sends one job. Undecodable or unrenderable jobs are
// dropped; delivery failures are retried through requeue.
func handle(ctx context.Context, body []byte, s sender, logger *logrus.Logger) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("bad message")
		return drop
	}
	subject, text, html, err := mailer.Compose(job)
	if err != nil {
		logger.WithError(err).WithField("template", job.Template).Warn("compose failed")
		return drop
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	id, err := s.Send(c, job.To, subject, text, html, job.Template)
	if err != nil {
		logger.WithError(err).WithField("template", job.Template).Warn("send failed")
		return retry
	}
	logger.WithFields(logrus.Fields{"template": job.Template, "message_id": id}).Info("email sent")
	return ack
}

const (
	attemptsHeader  = "x-send-attempts"
	maxSendAttempts = 5
	retryBackoff    = 2 * time.Second
)

// attempts reads how many sends of this job already failed.
func attempts(h amqp.Table) int {
	switch v := h[attemptsHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// requeue republishes a failed job with its attempt counter bumped, after a
// backoff that grows with each attempt. It reports false once the job has
// used up maxSendAttempts.
func requeue(ctx context.Context, pub publisher, queue string, msg amqp.Delivery, backoff time.Duration) (bool, error) {
	n := attempts(msg.Headers) + 1
	if n >= maxSendAttempts {
		return false, nil
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(time.Duration(n) * backoff):
	}

	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[attemptsHeader] = int32(n)
	err := pub.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		Headers:      headers,
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.Timestamp,
		Body:         msg.Body,
	})
	return err == nil, err
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			switch handle(ctx, msg.Body, mg, logger) {
			case ack:
				_ = msg.Ack(false)
			case drop:
				_ = msg.Nack(false, false)
			case retry:
				ok, err := requeue(ctx, ch, cfg.RabbitMQEmailQueue, msg, retryBackoff)
				switch {
				case err != nil:
					logger.WithError(err).Warn("requeue failed; returning job to broker")
					_ = msg.Nack(false, true)
				case !ok:
					logger.WithField("attempts", maxSendAttempts).Error("email job dropped after repeated send failures")
					_ = msg.Nack(false, false)
				default:
					_ = msg.Ack(false)
				}
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
