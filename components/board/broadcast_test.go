package board

import (
	"context"
	"testing"
	"time"
)

func TestBroadcastHookFansOut(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	if err := hook.BoardUpdated(context.Background(), Event{RecordID: "r1", Reason: "move"}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	select {
	case event := <-events:
		if event.RecordID != "r1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	cancel()

	if _, ok := <-events; ok {
		t.Fatalf("expected closed channel after cancel")
	}

	// Broadcasting after cancellation must not panic.
	if err := hook.BoardUpdated(context.Background(), Event{RecordID: "r2"}); err != nil {
		t.Fatalf("broadcast after cancel: %v", err)
	}
}

func TestBroadcastHookDropsWhenSubscriberIsSlow(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()

	// Fill past the buffer; the hook must never block the move commit.
	for i := 0; i < 32; i++ {
		if err := hook.BoardUpdated(context.Background(), Event{RecordID: "r"}); err != nil {
			t.Fatalf("broadcast: %v", err)
		}
	}
}
