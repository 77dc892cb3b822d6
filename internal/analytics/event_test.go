package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/serroba/link-tracker/internal/analytics"
	"github.com/serroba/link-tracker/internal/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return nil
}

type mockSubscriber struct {
	msgChan chan *message.Message
	topic   string
}

func (m *mockSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	m.topic = topic

	return m.msgChan, nil
}

func (m *mockSubscriber) Close() error {
	return nil
}

type mockSink struct {
	mu     sync.Mutex
	events []*tracking.ClickEvent
	err    error
}

func (m *mockSink) SaveClick(_ context.Context, event *tracking.ClickEvent) error {
	if m.err != nil {
		return m.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return nil
}

func TestNewClickPublisher(t *testing.T) {
	t.Run("publishes click to link.clicked", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := analytics.NewClickPublisher(mock)

		event := &tracking.ClickEvent{
			Timestamp: "3/5/2026, 1:04:09 PM",
			ClientIP:  "203.0.113.7",
			UserAgent: "TestAgent/1.0",
			Referrer:  tracking.DefaultReferrer,
			UTMSource: "instagram",
		}

		err := publish(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, analytics.TopicLinkClicked, mock.topic)
		require.Len(t, mock.messages, 1)

		var decoded tracking.ClickEvent
		require.NoError(t, json.Unmarshal(mock.messages[0].Payload, &decoded))
		assert.Equal(t, *event, decoded)
		assert.NotContains(t, string(mock.messages[0].Payload), "utm_medium")
	})

	t.Run("returns error when publish fails", func(t *testing.T) {
		mock := &mockPublisher{publishErr: errors.New("publish error")}
		publish := analytics.NewClickPublisher(mock)

		err := publish(context.Background(), &tracking.ClickEvent{})

		assert.Error(t, err)
	})
}

func TestNewClickConsumer(t *testing.T) {
	t.Run("delivers clicks to the sink", func(t *testing.T) {
		sub := &mockSubscriber{msgChan: make(chan *message.Message, 1)}
		sink := &mockSink{}
		consumer := analytics.NewClickConsumer(sub, sink, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))
		assert.Equal(t, analytics.TopicLinkClicked, sub.topic)

		payload, _ := json.Marshal(&tracking.ClickEvent{ClientIP: "10.0.0.1"})
		msg := message.NewMessage(uuid.NewString(), payload)

		sub.msgChan <- msg

		select {
		case <-msg.Acked():
		case <-msg.Nacked():
			t.Fatal("message was nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ack")
		}

		sink.mu.Lock()
		require.Len(t, sink.events, 1)
		assert.Equal(t, "10.0.0.1", sink.events[0].ClientIP)
		sink.mu.Unlock()

		_ = consumer.Shutdown()
	})

	t.Run("nacks when the sink fails", func(t *testing.T) {
		sub := &mockSubscriber{msgChan: make(chan *message.Message, 1)}
		sink := &mockSink{err: errors.New("sink error")}
		consumer := analytics.NewClickConsumer(sub, sink, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		payload, _ := json.Marshal(&tracking.ClickEvent{})
		msg := message.NewMessage(uuid.NewString(), payload)

		sub.msgChan <- msg

		select {
		case <-msg.Nacked():
		case <-msg.Acked():
			t.Fatal("message should have been nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for nack")
		}

		_ = consumer.Shutdown()
	})
}
