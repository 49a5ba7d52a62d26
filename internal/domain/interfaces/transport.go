package interfaces

import "context"

// LinkOpener hands a URL to the operating system (or whatever stands in for
// it) so the target application gets activated.
type LinkOpener interface {
	Open(ctx context.Context, rawURL string) error
}

// LinkSink accepts inbound URLs for later, serialised processing.
type LinkSink interface {
	Push(rawURL string) error
}

// Inbox holds inbound URLs delivered by short-lived handler processes until
// the running instance picks them up.
type Inbox interface {
	Put(rawURL string) (name string, err error)
	Take(name string) (rawURL string, ok bool, err error)
	Pending() ([]string, error)
	Dir() string
}
