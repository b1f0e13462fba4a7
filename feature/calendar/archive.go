package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"property-manager/core/storage"
	"property-manager/feature/calendar/models"

	"github.com/minio/minio-go/v7"
)

// Archiver persists raw feed snapshots to object storage. The archive is an
// audit trail: reconciliation hard-deletes events that roll off a provider's
// publish horizon, and the archived snapshots are what remains of them.
type Archiver struct {
	client storage.Client
	bucket string
}

// NewArchiver creates an archiver writing into the given bucket.
func NewArchiver(client storage.Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

// Archive stores one fetched feed document under
// feeds/<property>/<channel>/<timestamp>.ics.
func (a *Archiver) Archive(ctx context.Context, propertyID uint, channel models.Channel, raw string, fetchedAt time.Time) error {
	objectName := fmt.Sprintf("feeds/%d/%s/%s.ics",
		propertyID, channel, fetchedAt.UTC().Format("20060102T150405Z"))

	reader := strings.NewReader(raw)
	_, err := a.client.PutObject(ctx, a.bucket, objectName, reader, int64(len(raw)), minio.PutObjectOptions{
		ContentType: "text/calendar",
	})
	if err != nil {
		return fmt.Errorf("failed to archive feed snapshot %s: %w", objectName, err)
	}
	return nil
}
