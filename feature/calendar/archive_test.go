package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"property-manager/core/storage/mocks"
	"property-manager/feature/calendar/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiver_EnsureBucketCreatesWhenMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "feed-archive").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "feed-archive", mock.Anything).Return(nil)

	archiver := NewArchiver(client, "feed-archive")
	require.NoError(t, archiver.EnsureBucket(context.Background()))

	client.AssertExpectations(t)
}

func TestArchiver_EnsureBucketSkipsExisting(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "feed-archive").Return(true, nil)

	archiver := NewArchiver(client, "feed-archive")
	require.NoError(t, archiver.EnsureBucket(context.Background()))

	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiver_ArchiveObjectNaming(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "feed-archive",
		"feeds/42/airbnb/20250601T120000Z.ics",
		mock.Anything, int64(24), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/calendar"
		})).Return(minio.UploadInfo{}, nil)

	archiver := NewArchiver(client, "feed-archive")
	fetchedAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	err := archiver.Archive(context.Background(), 42, models.ChannelAirbnb, "BEGIN:VCALENDAR snapshot", fetchedAt)
	require.NoError(t, err)

	client.AssertExpectations(t)
}

func TestArchiver_ArchiveUploadError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	archiver := NewArchiver(client, "feed-archive")

	err := archiver.Archive(context.Background(), 1, models.ChannelBooking, "data", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to archive feed snapshot")
}
