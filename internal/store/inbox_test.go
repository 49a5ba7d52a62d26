package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"linkbox/internal/domain"
	"linkbox/internal/store"
)

func TestInbox_PutTake(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox")
	s, err := store.NewInbox(dir)
	if err != nil {
		t.Fatalf("NewInbox: %v", err)
	}
	var in domain.Inbox = s

	link := "linkbox:///api/v1/connect?response=rejected"
	name, err := in.Put(link + "\n")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !store.IsEntry(name) {
		t.Fatalf("Put returned non-entry name %q", name)
	}

	got, ok, err := in.Take(name)
	if err != nil || !ok {
		t.Fatalf("Take: ok=%v err=%v", ok, err)
	}
	if got != link {
		t.Fatalf("Take = %q, want %q", got, link)
	}

	if _, ok, err := in.Take(name); err != nil || ok {
		t.Fatalf("second Take: ok=%v err=%v", ok, err)
	}
}

func TestInbox_PendingOrder(t *testing.T) {
	in, err := store.NewInbox(t.TempDir())
	if err != nil {
		t.Fatalf("NewInbox: %v", err)
	}
	var want []string
	for _, l := range []string{"a:///1", "a:///2", "a:///3"} {
		name, err := in.Put(l)
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		want = append(want, name)
	}
	// Foreign and temp files are not entries.
	if err := os.WriteFile(filepath.Join(in.Dir(), "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in.Dir(), want[0]+".tmp-1"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := in.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Pending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Pending[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestInbox_TakeRejectsForeignNames(t *testing.T) {
	in, err := store.NewInbox(t.TempDir())
	if err != nil {
		t.Fatalf("NewInbox: %v", err)
	}
	for _, name := range []string{"notes.txt", "../x.link", "01ARZ3NDEKTSV4RRFFQ69G5FAV.link.tmp-1"} {
		if _, _, err := in.Take(name); !errors.Is(err, store.ErrInvalidEntry) {
			t.Fatalf("Take(%q): want ErrInvalidEntry, got %v", name, err)
		}
	}
}

func TestInbox_EntryPermissions(t *testing.T) {
	in, err := store.NewInbox(t.TempDir())
	if err != nil {
		t.Fatalf("NewInbox: %v", err)
	}
	name, err := in.Put("a:///1")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	fi, err := os.Stat(filepath.Join(in.Dir(), name))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", fi.Mode().Perm())
	}
}
