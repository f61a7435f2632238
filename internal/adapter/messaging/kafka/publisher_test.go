package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs     []kafka.Message
	err      error
	deadline bool
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "merchant-notifications", time.Second, zerolog.Nop())

	require.NoError(t, p.Publish(context.Background(), "merchant-1", []byte(`{"status":"SUCCESS"}`)))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("merchant-1"), w.msgs[0].Key)
	assert.JSONEq(t, `{"status":"SUCCESS"}`, string(w.msgs[0].Value))
	assert.False(t, w.msgs[0].Time.IsZero())
	assert.True(t, w.deadline, "publish must be bounded by a timeout")
}

func TestPublisher_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newPublisher(w, "merchant-notifications", 0, zerolog.Nop())

	err := p.Publish(context.Background(), "merchant-1", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merchant-notifications")
	assert.Equal(t, 10*time.Second, p.timeout)
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "t", time.Second, zerolog.Nop())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
