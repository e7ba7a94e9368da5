package uploader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drifterrors "github.com/driftlens/driftlens/internal/errors"
)

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeConfiguration))
}

func TestObjectKey_TimestampedUnderPrefix(t *testing.T) {
	u := &S3Uploader{cfg: Config{Bucket: "analyzer-reports", Prefix: "reports/"}}
	at := time.Date(2026, 3, 14, 9, 30, 45, 0, time.UTC)

	assert.Equal(t, "reports/report-2026-03-14-093045.json", u.ObjectKey(at))
}

func TestObjectKey_PrefixSlashNormalized(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 45, 0, time.UTC)

	u := &S3Uploader{cfg: Config{Bucket: "b", Prefix: "archive"}}
	assert.Equal(t, "archive/report-2026-03-14-093045.json", u.ObjectKey(at))

	u = &S3Uploader{cfg: Config{Bucket: "b"}}
	assert.Equal(t, "report-2026-03-14-093045.json", u.ObjectKey(at))
}
