package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"cloudgallery/internal/format"
	"cloudgallery/internal/types"
)

// MaxFileSize is the hard validation ceiling for a single upload.
const MaxFileSize = 50 * 1024 * 1024 // 50 MiB

// Status is the lifecycle state of one queued upload. Transitions are
// one-directional: pending -> uploading -> done | error. An item never goes
// back to pending except by removal and re-add.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

const fallbackErrorMessage = "Ошибка"

// Source is one file selected for upload. Open is called at most once, when
// the item's turn in the batch comes up.
type Source struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FromFile builds a Source for a local file path.
func FromFile(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%s is a directory", path)
	}

	return Source{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Item is one entry of the upload queue.
type Item struct {
	ID       string
	Source   Source
	Progress int
	Status   Status
	Error    string
}

// Uploader sends one file to the media service.
type Uploader interface {
	Upload(ctx context.Context, filename string, payload io.Reader) (types.Media, error)
}

// Invalidator drops the cached media list so the next read reflects the
// freshly uploaded files.
type Invalidator interface {
	InvalidateList(ctx context.Context) error
}

// Queue owns an ordered list of upload items and drives their sequential
// upload. Uploads within a batch are strictly one at a time; the mutex only
// guards queue state against concurrent inspection, not concurrent uploads.
type Queue struct {
	uploader    Uploader
	invalidator Invalidator

	mu         sync.Mutex
	items      []Item
	inProgress bool
}

// NewQueue creates an upload queue. invalidator may be nil when no cache is
// in play (tests, cacheless runs).
func NewQueue(uploader Uploader, invalidator Invalidator) *Queue {
	return &Queue{
		uploader:    uploader,
		invalidator: invalidator,
	}
}

// Enqueue validates the given sources and appends them to the queue in input
// order. Oversize files become terminal error items immediately and are
// never uploaded. Enqueue never contacts the network.
func (q *Queue) Enqueue(sources []Source) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, src := range sources {
		item := Item{
			ID:     uuid.NewString(),
			Source: src,
			Status: StatusPending,
		}
		if src.Size > MaxFileSize {
			item.Status = StatusError
			item.Error = "Макс. " + format.FileSize(MaxFileSize)
		}
		q.items = append(q.items, item)
	}
}

// Remove drops one item by position. The presentation layer is expected to
// only offer removal for items that are not uploading or done; the operation
// itself is a plain positional removal.
func (q *Queue) Remove(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return
	}
	q.items = append(q.items[:index], q.items[index+1:]...)
}

// Items returns a snapshot of the queue.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]Item, len(q.items))
	copy(items, q.items)
	return items
}

// PendingCount reports how many items are waiting to be uploaded.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pendingLocked()
}

// InProgress reports whether a batch is currently running.
func (q *Queue) InProgress() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inProgress
}

func (q *Queue) pendingLocked() int {
	n := 0
	for i := range q.items {
		if q.items[i].Status == StatusPending {
			n++
		}
	}
	return n
}

// StartUpload drives one batch: every item that is pending when the batch
// starts is uploaded sequentially, in insertion order. Items that settled in
// a previous batch are skipped, never retried. Returns the number of items
// that finished this pass as done.
//
// If a batch is already running or nothing is pending, the call is a no-op
// returning 0. When at least one upload succeeded the cached media list is
// invalidated and the whole queue, including failed items, is cleared;
// otherwise the queue stays intact for inspection.
func (q *Queue) StartUpload(ctx context.Context) int {
	q.mu.Lock()
	if q.inProgress || q.pendingLocked() == 0 {
		q.mu.Unlock()
		return 0
	}
	q.inProgress = true

	// Snapshot of this batch: items enqueued mid-pass wait for the next one.
	batch := make([]string, 0, len(q.items))
	for i := range q.items {
		if q.items[i].Status == StatusPending {
			batch = append(batch, q.items[i].ID)
		}
	}
	q.mu.Unlock()

	successCount := 0
	for _, id := range batch {
		src, ok := q.markUploading(id)
		if !ok {
			// Removed or otherwise settled since the snapshot.
			continue
		}

		err := q.uploadOne(ctx, src)
		if err != nil {
			msg := err.Error()
			if msg == "" {
				msg = fallbackErrorMessage
			}
			q.settle(id, StatusError, 0, msg)
			slog.Error("upload failed",
				slog.String("file", src.Name),
				slog.String("error", err.Error()))
			continue
		}

		q.settle(id, StatusDone, 100, "")
		successCount++
	}

	q.mu.Lock()
	q.inProgress = false
	if successCount > 0 {
		q.items = nil
	}
	q.mu.Unlock()

	if successCount > 0 && q.invalidator != nil {
		if err := q.invalidator.InvalidateList(ctx); err != nil {
			slog.Error("failed to invalidate media list cache",
				slog.String("error", err.Error()))
		}
	}

	return successCount
}

func (q *Queue) markUploading(id string) (Source, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].ID != id {
			continue
		}
		if q.items[i].Status != StatusPending {
			return Source{}, false
		}
		q.items[i].Status = StatusUploading
		// Byte-level progress is not tracked; show an indicative midpoint.
		q.items[i].Progress = 50
		return q.items[i].Source, true
	}
	return Source{}, false
}

func (q *Queue) settle(id string, status Status, progress int, errMsg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].ID != id {
			continue
		}
		q.items[i].Status = status
		q.items[i].Progress = progress
		q.items[i].Error = errMsg
		return
	}
}

func (q *Queue) uploadOne(ctx context.Context, src Source) error {
	payload, err := src.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", src.Name, err)
	}
	defer payload.Close()

	_, err = q.uploader.Upload(ctx, src.Name, payload)
	return err
}
