package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "laptrack.events", logger: zaptest.NewLogger(t)}

	ctx := WithActor(context.Background(), "user-1")
	ev := New(LaptopCreated, "abc123", map[string]string{"serial_number": "SN-1"})
	require.NoError(t, p.Publish(ctx, ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "abc123", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, LaptopCreated, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, "user-1", decoded.Actor)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &KafkaPublisher{writer: w, topic: "laptrack.events", logger: zaptest.NewLogger(t)}

	err := p.Publish(context.Background(), New(IssueCreated, "i1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Contains(t, err.Error(), IssueCreated)
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.Publish(WithActor(context.Background(), "u2"), New(EmployeeDeleted, "e1", nil)))
	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, EmployeeDeleted, fields["event_type"])
	assert.Equal(t, "u2", fields["actor"])
}

func TestFanoutFailsOnlyWhenAllFail(t *testing.T) {
	ok := &KafkaPublisher{writer: &fakeWriter{}, topic: "t"}
	bad := &KafkaPublisher{writer: &fakeWriter{err: errors.New("nope")}, topic: "t"}

	f := NewFanout(zaptest.NewLogger(t), bad, ok)
	assert.NoError(t, f.Publish(context.Background(), New(LaptopUpdated, "l1", nil)))

	f = NewFanout(zaptest.NewLogger(t), bad)
	err := f.Publish(context.Background(), New(LaptopUpdated, "l1", nil))
	assert.ErrorContains(t, err, "all publishers failed")
	assert.NoError(t, f.Close())
}

func TestNewKafkaPublisherDoesNotDial(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"}, "laptrack.events", zaptest.NewLogger(t))
	assert.NoError(t, p.Close())
}
