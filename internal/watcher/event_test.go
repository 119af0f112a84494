package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		eventType EventType
		want      string
	}{
		{EventAdded, "added"},
		{EventModified, "modified"},
		{EventRemoved, "removed"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.eventType.String()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_Creation(t *testing.T) {
	now := time.Now()
	event := Event{
		Type:    EventAdded,
		Path:    "/data/hr1_ih.xlsx",
		Size:    1024,
		ModTime: now,
	}

	assert.Equal(t, EventAdded, event.Type)
	assert.Equal(t, "/data/hr1_ih.xlsx", event.Path)
	assert.Equal(t, int64(1024), event.Size)
	assert.Equal(t, now, event.ModTime)
}
