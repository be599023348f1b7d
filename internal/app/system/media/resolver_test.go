package media_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dalemusser/vaulthub/internal/app/system/media"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore records Put/Delete calls and can be told to fail either.
type fakeStore struct {
	putPaths    []string
	putErr      error
	deletePaths []string
	deleteErr   error
}

func (f *fakeStore) Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putPaths = append(f.putPaths, path)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, path string) error {
	f.deletePaths = append(f.deletePaths, path)
	return f.deleteErr
}

func (f *fakeStore) URL(path string) string {
	return "/files/" + path
}

func (f *fakeStore) PresignedURL(ctx context.Context, path string, opts *storage.PresignOptions) (string, error) {
	return "/files/" + path, nil
}

// The remaining storage.Store methods are never exercised by the
// resolver; they exist only to satisfy the interface.
func (f *fakeStore) PutBytes(ctx context.Context, path string, data []byte, opts *storage.PutOptions) error {
	return nil
}
func (f *fakeStore) Get(ctx context.Context, path string) (io.ReadCloser, error) { return nil, nil }
func (f *fakeStore) GetBytes(ctx context.Context, path string) ([]byte, error)   { return nil, nil }
func (f *fakeStore) GetWithInfo(ctx context.Context, path string) (io.ReadCloser, *storage.ObjectInfo, error) {
	return nil, nil, nil
}
func (f *fakeStore) Head(ctx context.Context, path string) (*storage.ObjectInfo, error) {
	return nil, nil
}
func (f *fakeStore) DeleteMany(ctx context.Context, paths []string) (int, error) { return 0, nil }
func (f *fakeStore) Exists(ctx context.Context, path string) (bool, error)       { return false, nil }
func (f *fakeStore) List(ctx context.Context, prefix string, opts *storage.ListOptions) (*storage.ListResult, error) {
	return nil, nil
}
func (f *fakeStore) Copy(ctx context.Context, src, dst string) error { return nil }
func (f *fakeStore) Move(ctx context.Context, src, dst string) error { return nil }
func (f *fakeStore) PresignedUploadURL(ctx context.Context, path string, opts *storage.PresignUploadOptions) (*storage.PresignedUpload, error) {
	return nil, nil
}
func (f *fakeStore) Backend() string { return "fake" }

// fakeFetcher returns a canned record or error and counts calls.
type fakeFetcher struct {
	rec   *models.PreviewRecord
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*models.PreviewRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

func linkRecord(url string) *models.PreviewRecord {
	return &models.PreviewRecord{Type: models.PreviewLink, Title: "Link", Description: "Visit link", URL: url}
}

func newUpload(name string) *media.Upload {
	return &media.Upload{
		Filename:    name,
		ContentType: "text/plain",
		Size:        5,
		Reader:      strings.NewReader("hello"),
	}
}

func TestResolve_UploadWins(t *testing.T) {
	store := &fakeStore{}
	fetch := &fakeFetcher{rec: linkRecord("https://example.com")}
	rv := media.NewResolver(store, fetch, zap.NewNop())

	att, err := rv.Resolve(context.Background(), "owner1", nil, "https://example.com", newUpload("notes.txt"))
	require.NoError(t, err)

	assert.Nil(t, att.Preview, "an upload must clear any preview")
	assert.Equal(t, "notes.txt", att.MediaName)
	assert.True(t, strings.HasPrefix(att.MediaPath, "resources/owner1/"), "path %q", att.MediaPath)
	assert.True(t, strings.HasSuffix(att.MediaPath, "-notes.txt"), "path %q", att.MediaPath)
	assert.Equal(t, "/files/"+att.MediaPath, att.MediaURL)
	assert.Zero(t, fetch.calls, "upload must suppress the preview fetch")
}

func TestResolve_UploadReleasesPriorMedia(t *testing.T) {
	store := &fakeStore{}
	rv := media.NewResolver(store, &fakeFetcher{}, zap.NewNop())

	prior := &models.Resource{MediaPath: "resources/owner1/old-file.png", MediaURL: "/files/resources/owner1/old-file.png"}

	att, err := rv.Resolve(context.Background(), "owner1", prior, "", newUpload("new.png"))
	require.NoError(t, err)

	assert.NotEqual(t, prior.MediaPath, att.MediaPath)
	assert.Equal(t, []string{prior.MediaPath}, store.deletePaths)
}

func TestResolve_UploadReleaseFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("object gone")}
	rv := media.NewResolver(store, &fakeFetcher{}, zap.NewNop())

	prior := &models.Resource{MediaPath: "resources/owner1/old"}

	att, err := rv.Resolve(context.Background(), "owner1", prior, "", newUpload("new.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, att.MediaPath)
}

func TestResolve_UploadWithPriorPreview_NoDelete(t *testing.T) {
	store := &fakeStore{}
	rv := media.NewResolver(store, &fakeFetcher{}, zap.NewNop())

	prior := &models.Resource{
		URL:        "https://example.com/a",
		URLPreview: linkRecord("https://example.com/a"),
	}

	att, err := rv.Resolve(context.Background(), "owner1", prior, prior.URL, newUpload("photo.jpg"))
	require.NoError(t, err)

	assert.Nil(t, att.Preview)
	assert.Empty(t, store.deletePaths, "no stored object existed, so nothing to release")
}

func TestResolve_UploadStorageFailureAborts(t *testing.T) {
	store := &fakeStore{putErr: errors.New("disk full")}
	rv := media.NewResolver(store, &fakeFetcher{}, zap.NewNop())

	_, err := rv.Resolve(context.Background(), "owner1", nil, "", newUpload("big.bin"))
	assert.Error(t, err)
}

func TestResolve_NewURLFetchesPreview(t *testing.T) {
	rec := linkRecord("https://example.com/new")
	fetch := &fakeFetcher{rec: rec}
	rv := media.NewResolver(&fakeStore{}, fetch, zap.NewNop())

	att, err := rv.Resolve(context.Background(), "owner1", nil, "https://example.com/new", nil)
	require.NoError(t, err)

	assert.Equal(t, rec, att.Preview)
	assert.Empty(t, att.MediaPath)
	assert.Equal(t, 1, fetch.calls)
}

func TestResolve_ChangedURLRefetches(t *testing.T) {
	rec := linkRecord("https://example.com/b")
	fetch := &fakeFetcher{rec: rec}
	rv := media.NewResolver(&fakeStore{}, fetch, zap.NewNop())

	prior := &models.Resource{
		URL:        "https://example.com/a",
		URLPreview: linkRecord("https://example.com/a"),
	}

	att, err := rv.Resolve(context.Background(), "owner1", prior, "https://example.com/b", nil)
	require.NoError(t, err)

	assert.Equal(t, rec, att.Preview)
	assert.Equal(t, 1, fetch.calls)
}

func TestResolve_FetchFailureMeansNoPreview(t *testing.T) {
	fetch := &fakeFetcher{err: errors.New("internal fault")}
	rv := media.NewResolver(&fakeStore{}, fetch, zap.NewNop())

	att, err := rv.Resolve(context.Background(), "owner1", nil, "https://example.com", nil)
	require.NoError(t, err, "a preview failure must not fail the mutation")
	assert.Nil(t, att.Preview)
}

func TestResolve_UnchangedURLCarriesPriorState(t *testing.T) {
	fetch := &fakeFetcher{rec: linkRecord("x")}
	rv := media.NewResolver(&fakeStore{}, fetch, zap.NewNop())

	prior := &models.Resource{
		URL:        "https://example.com/a",
		URLPreview: linkRecord("https://example.com/a"),
		MediaName:  "",
	}

	att, err := rv.Resolve(context.Background(), "owner1", prior, prior.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, prior.URLPreview, att.Preview)
	assert.Zero(t, fetch.calls, "unchanged url must not refetch")
}

func TestResolve_NothingYieldsEmptyAttachment(t *testing.T) {
	fetch := &fakeFetcher{rec: linkRecord("x")}
	rv := media.NewResolver(&fakeStore{}, fetch, zap.NewNop())

	att, err := rv.Resolve(context.Background(), "owner1", nil, "", nil)
	require.NoError(t, err)

	assert.Equal(t, media.Attachment{}, att)
	assert.Zero(t, fetch.calls)
}

func TestResolve_FilenameSanitized(t *testing.T) {
	store := &fakeStore{}
	rv := media.NewResolver(store, &fakeFetcher{}, zap.NewNop())

	att, err := rv.Resolve(context.Background(), "owner1", nil, "", newUpload("../../etc/pass wd?.txt"))
	require.NoError(t, err)

	assert.NotContains(t, att.MediaPath, "..")
	assert.NotContains(t, att.MediaPath, " ")
	assert.NotContains(t, att.MediaPath, "?")
	// The original filename is preserved for download headers.
	assert.Equal(t, "../../etc/pass wd?.txt", att.MediaName)
}

func TestReleaseMedia_EmptyPathIsNoop(t *testing.T) {
	store := &fakeStore{}
	rv := media.NewResolver(store, &fakeFetcher{}, zap.NewNop())

	rv.ReleaseMedia(context.Background(), "")
	assert.Empty(t, store.deletePaths)

	rv.ReleaseMedia(context.Background(), "resources/owner1/f")
	assert.Equal(t, []string{"resources/owner1/f"}, store.deletePaths)
}
