package content

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/infrastructure"
	"parley/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewContainer(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAndFind(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), created.Size)

	found, err := svc.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", found.FileName)
	assert.Equal(t, []byte("%PDF-1.7"), found.Data)
}

func TestCreateRejectsEmptyBlob(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{FileName: "empty.bin", ContentType: "application/octet-stream"})
	require.Error(t, err)
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindInvalidOperation))
}

func TestFindAllByIDInSkipsUnresolvable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateRequest{FileName: "a", ContentType: "text/plain", Data: []byte{1}})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateRequest{FileName: "b", ContentType: "text/plain", Data: []byte{2}})
	require.NoError(t, err)

	blobs, err := svc.FindAllByIDIn(ctx, []uuid.UUID{a.ID, uuid.New(), b.ID})
	require.NoError(t, err)
	assert.Len(t, blobs, 2, "unknown ids are skipped, not errors")
}

func TestDeleteIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{FileName: "a", ContentType: "text/plain", Data: []byte{1}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Find(ctx, created.ID)
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindNotFound))
}
