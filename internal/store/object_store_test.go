package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wavrons/stargate/internal/adapter"
	"github.com/wavrons/stargate/internal/codec"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/mock"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/models"
)

const objPath = "data/images/trip-1/photo.jpg.enc"

func newMockedStore(t *testing.T) (store.ObjectStore, *mock.MockContentBackend) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mock.NewMockContentBackend(ctrl)
	return store.NewContentObjectStore(backend, logger.Nop()), backend
}

func commitResponse(sha string) models.FileCommitResponse {
	return models.FileCommitResponse{
		Content: &models.ContentFile{Path: objPath, SHA: sha, Type: "file"},
		Commit:  models.CommitInfo{SHA: "commit-" + sha},
	}
}

// ── Put ──────────────────────────────────────────────────────────────────────

func TestObjectStore_Put_CreateSendsNoRevision(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	backend.EXPECT().CreateOrUpdateFileContents(ctx, models.FileContentsRequest{
		Path:    objPath,
		Message: "Upload image: photo.jpg [trip:trip-1]",
		Content: "AAEC",
	}).Return(commitResponse("sha-1"), nil)

	rev, err := s.Put(ctx, objPath, "AAEC", "", store.WithMessage("Upload image: photo.jpg [trip:trip-1]"))
	require.NoError(t, err)
	assert.Equal(t, "sha-1", rev)
}

func TestObjectStore_Put_DefaultMessage(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	backend.EXPECT().CreateOrUpdateFileContents(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.FileContentsRequest) (models.FileCommitResponse, error) {
			assert.Equal(t, "Update "+objPath, req.Message)
			assert.Equal(t, "sha-0", req.SHA)
			return commitResponse("sha-1"), nil
		})

	_, err := s.Put(ctx, objPath, "AAEC", "sha-0")
	require.NoError(t, err)
}

func TestObjectStore_Put_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		backend error
		want    []error
	}{
		{name: "conflict", backend: adapter.ErrConflict, want: []error{store.ErrRevisionConflict}},
		{name: "unauthorized", backend: adapter.ErrUnauthorized, want: []error{store.ErrUnauthorized}},
		{name: "forbidden", backend: adapter.ErrForbidden, want: []error{store.ErrUnauthorized}},
		{name: "server error", backend: adapter.ErrServerError, want: []error{store.ErrTransport}},
		{name: "transport", backend: adapter.ErrTransport, want: []error{store.ErrTransport}},
		{name: "timeout", backend: adapter.ErrTimeout, want: []error{store.ErrTimeout, store.ErrTransport}},
		{name: "invalid path", backend: adapter.ErrInvalidPath, want: []error{store.ErrInvalidPath}},
		{name: "unprocessable", backend: adapter.ErrUnprocessable, want: []error{store.ErrTransport}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := newMockedStore(t)
			backend.EXPECT().CreateOrUpdateFileContents(gomock.Any(), gomock.Any()).
				Return(models.FileCommitResponse{}, tt.backend)

			rev, err := s.Put(context.Background(), objPath, "AAEC", "")
			assert.Empty(t, rev)
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestObjectStore_Put_MissingRevisionInResponse(t *testing.T) {
	s, backend := newMockedStore(t)
	backend.EXPECT().CreateOrUpdateFileContents(gomock.Any(), gomock.Any()).
		Return(models.FileCommitResponse{}, nil)

	_, err := s.Put(context.Background(), objPath, "AAEC", "")
	assert.ErrorIs(t, err, store.ErrTransport)
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestObjectStore_Get(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	backend.EXPECT().GetContent(ctx, objPath).
		Return(models.ContentFile{Path: objPath, SHA: "sha-9", Content: "AAEC\n", Type: "file"}, nil)

	obj, err := s.Get(ctx, objPath)
	require.NoError(t, err)
	assert.Equal(t, models.RemoteObject{Path: objPath, Content: "AAEC\n", Revision: "sha-9"}, obj)
}

func TestObjectStore_Get_NotFoundAndDirectory(t *testing.T) {
	for _, backendErr := range []error{adapter.ErrNotFound, adapter.ErrNotAFile} {
		s, backend := newMockedStore(t)
		backend.EXPECT().GetContent(gomock.Any(), objPath).Return(models.ContentFile{}, backendErr)

		_, err := s.Get(context.Background(), objPath)
		assert.ErrorIs(t, err, store.ErrObjectNotFound)
	}
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestObjectStore_Delete_UsesExplicitRevision(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	backend.EXPECT().DeleteFile(ctx, models.DeleteFileRequest{
		Path:    objPath,
		Message: "Delete image: " + objPath,
		SHA:     "sha-explicit",
	}).Return(models.FileCommitResponse{}, nil)

	err := s.Delete(ctx, objPath, "sha-explicit", store.WithMessage("Delete image: "+objPath))
	require.NoError(t, err)
}

func TestObjectStore_Delete_UsesCachedRevisionWithoutRefetch(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	gomock.InOrder(
		backend.EXPECT().CreateOrUpdateFileContents(ctx, gomock.Any()).Return(commitResponse("sha-cached"), nil),
		backend.EXPECT().DeleteFile(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.DeleteFileRequest) (models.FileCommitResponse, error) {
				assert.Equal(t, "sha-cached", req.SHA)
				return models.FileCommitResponse{}, nil
			}),
	)

	_, err := s.Put(ctx, objPath, "AAEC", "")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, objPath, ""))
}

func TestObjectStore_Delete_FetchesRevisionWhenUnknown(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	gomock.InOrder(
		backend.EXPECT().GetContent(ctx, objPath).Return(models.ContentFile{SHA: "sha-fetched", Type: "file"}, nil),
		backend.EXPECT().DeleteFile(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.DeleteFileRequest) (models.FileCommitResponse, error) {
				assert.Equal(t, "sha-fetched", req.SHA)
				return models.FileCommitResponse{}, nil
			}),
	)

	require.NoError(t, s.Delete(ctx, objPath, ""))
}

func TestObjectStore_Delete_MissingObject(t *testing.T) {
	s, backend := newMockedStore(t)
	backend.EXPECT().GetContent(gomock.Any(), objPath).Return(models.ContentFile{}, adapter.ErrNotFound)

	err := s.Delete(context.Background(), objPath, "")
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestObjectStore_Delete_InvalidatesCache(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	gomock.InOrder(
		backend.EXPECT().CreateOrUpdateFileContents(ctx, gomock.Any()).Return(commitResponse("sha-1"), nil),
		backend.EXPECT().DeleteFile(ctx, gomock.Any()).Return(models.FileCommitResponse{}, nil),
		// a second delete must go back to the backend for the revision
		backend.EXPECT().GetContent(ctx, objPath).Return(models.ContentFile{}, adapter.ErrNotFound),
	)

	_, err := s.Put(ctx, objPath, "AAEC", "")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, objPath, ""))
	assert.ErrorIs(t, s.Delete(ctx, objPath, ""), store.ErrObjectNotFound)
}

func TestObjectStore_Delete_StaleCacheIsDroppedOnConflict(t *testing.T) {
	s, backend := newMockedStore(t)
	ctx := context.Background()

	gomock.InOrder(
		backend.EXPECT().CreateOrUpdateFileContents(ctx, gomock.Any()).Return(commitResponse("sha-old"), nil),
		backend.EXPECT().DeleteFile(ctx, gomock.Any()).Return(models.FileCommitResponse{}, adapter.ErrConflict),
		backend.EXPECT().GetContent(ctx, objPath).Return(models.ContentFile{SHA: "sha-new", Type: "file"}, nil),
		backend.EXPECT().DeleteFile(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.DeleteFileRequest) (models.FileCommitResponse, error) {
				assert.Equal(t, "sha-new", req.SHA)
				return models.FileCommitResponse{}, nil
			}),
	)

	_, err := s.Put(ctx, objPath, "AAEC", "")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Delete(ctx, objPath, ""), store.ErrRevisionConflict)
	require.NoError(t, s.Delete(ctx, objPath, ""))
}

// ── Against the in-memory backend ────────────────────────────────────────────

func TestObjectStore_MemoryBackendLifecycle(t *testing.T) {
	s := store.NewContentObjectStore(adapter.NewMemoryContentBackend(), logger.Nop())
	ctx := context.Background()
	content := codec.ToTransportText([]byte{0, 1, 2, 3, 4, 5})

	rev1, err := s.Put(ctx, objPath, content, "")
	require.NoError(t, err)

	// create over an existing object conflicts
	_, err = s.Put(ctx, objPath, content, "")
	assert.ErrorIs(t, err, store.ErrRevisionConflict)

	rev2, err := s.Put(ctx, objPath, codec.ToTransportText([]byte{9}), rev1)
	require.NoError(t, err)
	assert.NotEqual(t, rev1, rev2)

	obj, err := s.Get(ctx, objPath)
	require.NoError(t, err)
	assert.Equal(t, rev2, obj.Revision)
	raw, err := codec.FromTransportText(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, raw)

	require.NoError(t, s.Delete(ctx, objPath, ""))

	_, err = s.Get(ctx, objPath)
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}
