package deeplink_test

import (
	"context"
	"testing"
	"time"

	"linkbox/internal/deeplink"
	"linkbox/internal/store"
)

type chanSink chan string

func (c chanSink) Push(raw string) error {
	c <- raw
	return nil
}

func TestWatcher_ForwardsEntries(t *testing.T) {
	inbox, err := store.NewInbox(t.TempDir())
	if err != nil {
		t.Fatalf("NewInbox: %v", err)
	}
	// Waiting before the watcher starts: picked up by the sweep.
	if _, err := inbox.Put("linkbox:///api/v1/connect?response=early"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	sink := make(chanSink, 4)
	w, err := deeplink.NewWatcher(deeplink.WatcherConfig{Inbox: inbox, Sink: sink})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	expect := func(want string) {
		t.Helper()
		select {
		case got := <-sink:
			if got != want {
				t.Fatalf("forwarded %q, want %q", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
	expect("linkbox:///api/v1/connect?response=early")

	if _, err := inbox.Put("linkbox:///api/v1/connect?response=late"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	expect("linkbox:///api/v1/connect?response=late")

	pending, err := inbox.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("inbox not drained: %v", pending)
	}
}
