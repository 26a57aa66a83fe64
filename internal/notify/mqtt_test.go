package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
)

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type fakeClient struct {
	topic   string
	payload []byte
	err     error
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.topic = topic
	f.payload = payload.([]byte)
	return doneToken{err: f.err}
}

func (f *fakeClient) Disconnect(quiesce uint) {}

func TestPublish(t *testing.T) {
	fc := &fakeClient{}
	p := &Publisher{client: fc, topic: "imsakiye/exports"}

	err := p.Publish(context.Background(), export.Event{ID: "1", State: "Bayern", City: "Ulm", FileName: "imsakiye-Ulm-Bayern-2026.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "imsakiye/exports/Bayern/Ulm", fc.topic)

	var e export.Event
	require.NoError(t, json.Unmarshal(fc.payload, &e))
	assert.Equal(t, "imsakiye-Ulm-Bayern-2026.pdf", e.FileName)
}

func TestPublishError(t *testing.T) {
	p := &Publisher{client: &fakeClient{err: errors.New("not connected")}, topic: "t"}
	assert.Error(t, p.Publish(context.Background(), export.Event{}))
	assert.NoError(t, Noop{}.Publish(context.Background(), export.Event{}))
}

type pendingToken struct{ doneToken }

func (pendingToken) WaitTimeout(time.Duration) bool { return false }

func TestWaitConnected(t *testing.T) {
	assert.NoError(t, waitConnected(doneToken{}, time.Millisecond))

	err := waitConnected(doneToken{err: errors.New("connection refused")}, time.Millisecond)
	assert.ErrorContains(t, err, "connection refused")

	err = waitConnected(pendingToken{}, time.Millisecond)
	assert.ErrorContains(t, err, "timed out")
}
