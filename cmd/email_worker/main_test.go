package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/mailer"
	mailtpl "github.com/oksasatya/securetask/pkg/mailer/templates"
)

type fakeSender struct {
	err     error
	to      string
	subject string
	html    string
	tags    []string
}

func (f *fakeSender) Send(_ context.Context, to, subject, _, html string, tags ...string) (string, error) {
	f.to, f.subject, f.html, f.tags = to, subject, html, tags
	if f.err != nil {
		return "", f.err
	}
	return "<msg@test>", nil
}

func encode(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandle_WelcomeJob(t *testing.T) {
	s := &fakeSender{}
	job := mailer.EmailJob{To: "ann@x.com", Template: mailtpl.Welcome, Data: map[string]any{"Name": "Ann", "AppName": "SecureTask"}}

	got := handle(context.Background(), encode(t, job), s, helpers.NewNopLogger())

	assert.Equal(t, ack, got)
	assert.Equal(t, "ann@x.com", s.to)
	assert.NotEmpty(t, s.subject)
	assert.Contains(t, s.html, "Ann")
	assert.Equal(t, []string{mailtpl.Welcome}, s.tags)
}

func TestHandle_BadMessageIsDropped(t *testing.T) {
	s := &fakeSender{}
	assert.Equal(t, drop, handle(context.Background(), []byte("{"), s, helpers.NewNopLogger()))
	assert.Empty(t, s.to)
}

func TestHandle_EmptyJobIsDropped(t *testing.T) {
	s := &fakeSender{}
	assert.Equal(t, drop, handle(context.Background(), encode(t, mailer.EmailJob{To: "a@x.com"}), s, helpers.NewNopLogger()))
}

func TestHandle_SendFailureIsRetried(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}
	job := mailer.EmailJob{To: "a@x.com", Subject: "hi", Text: "body"}
	assert.Equal(t, retry, handle(context.Background(), encode(t, job), s, helpers.NewNopLogger()))
}

type fakePublisher struct {
	queue string
	msgs  []amqp.Publishing
	err   error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.queue = key
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestAttempts(t *testing.T) {
	assert.Equal(t, 0, attempts(nil))
	assert.Equal(t, 2, attempts(amqp.Table{attemptsHeader: int32(2)}))
	assert.Equal(t, 3, attempts(amqp.Table{attemptsHeader: int64(3)}))
	assert.Equal(t, 0, attempts(amqp.Table{attemptsHeader: "x"}))
}

func TestRequeue_BumpsAttemptCounter(t *testing.T) {
	pub := &fakePublisher{}
	msg := amqp.Delivery{Body: []byte(`{"to":"a@x.com"}`), ContentType: "application/json", Headers: amqp.Table{"trace": "t1"}}

	ok, err := requeue(context.Background(), pub, "emails", msg, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "emails", pub.queue)
	assert.Equal(t, msg.Body, pub.msgs[0].Body)
	assert.Equal(t, int32(1), pub.msgs[0].Headers[attemptsHeader])
	assert.Equal(t, "t1", pub.msgs[0].Headers["trace"])
	assert.Equal(t, uint8(amqp.Persistent), pub.msgs[0].DeliveryMode)

	ok, err = requeue(context.Background(), pub, "emails", amqp.Delivery{Headers: pub.msgs[0].Headers}, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(2), pub.msgs[1].Headers[attemptsHeader])
}

func TestRequeue_GivesUpAfterMaxAttempts(t *testing.T) {
	pub := &fakePublisher{}
	msg := amqp.Delivery{Headers: amqp.Table{attemptsHeader: int32(maxSendAttempts - 1)}}

	ok, err := requeue(context.Background(), pub, "emails", msg, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, pub.msgs)
}

func TestRequeue_StopsOnShutdown(t *testing.T) {
	pub := &fakePublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := requeue(ctx, pub, "emails", amqp.Delivery{}, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Empty(t, pub.msgs)
}

func TestRequeue_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}

	ok, err := requeue(context.Background(), pub, "emails", amqp.Delivery{}, 0)
	assert.Error(t, err)
	assert.False(t, ok)
}
