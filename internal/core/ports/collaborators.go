package ports

import (
	"context"
	"io"
)

// Notifier delivers a templated message. A returned error is a reported
// failure; implementations never panic on delivery problems.
type Notifier interface {
	Send(ctx context.Context, to, template string, vars map[string]string) error
}

// UploadInput describes one file handed to the upload sink.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores a file with an external host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (string, error)
}

// SubscriptionDedup remembers recently welcomed newsletter addresses.
type SubscriptionDedup interface {
	IsDuplicate(ctx context.Context, email string) (bool, error)
	Mark(ctx context.Context, email string) error
}
