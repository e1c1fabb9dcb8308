package ports

import (
	"context"
	"io"
)

// MediaAsset is what the delegate hands back after storing an image: a
// public locator and the identifier needed to destroy the asset later.
type MediaAsset struct {
	URL      string
	PublicID string
}

// MediaStore abstracts the external hosted media service. The system only
// keeps the returned locators; the binary data never touches our storage.
type MediaStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*MediaAsset, error)
	Destroy(ctx context.Context, publicID string) error
}

// CleanupTask is a pending delegate-side deletion. Tasks are enqueued when
// a destroy fails mid-operation or when a restaurant is deleted with
// assets still attached, and drained by a background worker.
type CleanupTask struct {
	PublicID string `json:"public_id"`
	Attempts int    `json:"attempts"`
}

// CleanupQueue is the durable queue feeding the media cleanup worker.
type CleanupQueue interface {
	Enqueue(ctx context.Context, task CleanupTask) error
	// Dequeue blocks up to the queue's poll interval and returns nil when
	// no task arrived.
	Dequeue(ctx context.Context) (*CleanupTask, error)
}
