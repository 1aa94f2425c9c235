package archive

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/AdamBeresnev/cue-stats/internal/config"
	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/service"
	"github.com/AdamBeresnev/cue-stats/internal/store"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	objects      map[string][]byte
	contentTypes map[string]string
	failOn       string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(params.Key)
	if f.failOn != "" && key == f.failOn {
		return nil, errors.New("boom")
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = body
	f.contentTypes[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func fixedArchiver(up Uploader) *Archiver {
	a := New(up, "bucket", "snapshots")
	a.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestSnapshotPrefix(t *testing.T) {
	a := fixedArchiver(newFakeUploader())

	assert.Equal(t, "snapshots/spring-league/20240501T120000Z", a.SnapshotPrefix("Spring League"))
	assert.Equal(t, "snapshots/default/20240501T120000Z", a.SnapshotPrefix("  "))
}

func TestSnapshot(t *testing.T) {
	svc := service.NewMatchService(store.NewMemoryMatchStore())
	_, err := svc.Submit(context.Background(), match.Submission{Player1: "A", Player2: "B", Score1: 3, Score2: 1, Games: 1})
	require.NoError(t, err)

	up := newFakeUploader()
	keys, err := fixedArchiver(up).Snapshot(context.Background(), svc, "weekly")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"snapshots/weekly/20240501T120000Z/match_records.csv",
		"snapshots/weekly/20240501T120000Z/player_stats.csv",
		"snapshots/weekly/20240501T120000Z/stats.png",
	}, keys)

	assert.Equal(t, "image/png", up.contentTypes[keys[2]])
	assert.Equal(t, "text/csv; charset=utf-8", up.contentTypes[keys[0]])
	assert.Equal(t, []byte("\xef\xbb\xbf"), up.objects[keys[0]][:3])
}

func TestSnapshot_UploadFailure(t *testing.T) {
	svc := service.NewMatchService(store.NewMemoryMatchStore())

	up := newFakeUploader()
	up.failOn = "snapshots/weekly/20240501T120000Z/player_stats.csv"

	keys, err := fixedArchiver(up).Snapshot(context.Background(), svc, "weekly")
	require.Error(t, err)
	assert.Len(t, keys, 1)
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := NewS3Client(context.Background(), config.ArchiveConfig{})
	assert.ErrorIs(t, err, ErrNoBucket)
}
