package letsosdk

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/server"
	"github.com/vauradkar/letso/internal/version"
)

func newTestSDK(t *testing.T, mutate func(*server.Config)) (*LetsoSDK, string) {
	t.Helper()
	config := server.DefaultConfig()
	config.HTTP.Addr = "127.0.0.1:0"
	config.Store.RootDir = filepath.Join(t.TempDir(), "uploads")
	if mutate != nil {
		mutate(config)
	}

	srv, err := server.New(config)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		assert.NoError(t, srv.Stop(context.Background()))
	})

	sdk, err := New(ts.URL)
	require.NoError(t, err)
	return sdk, config.Store.RootDir
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestNewRequiresHTTPURL(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoServerURL)

	_, err = New("ftp://example.com")
	assert.ErrorIs(t, err, ErrNoServerURL)

	sdk, err := New("http://localhost:3000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", sdk.BaseURL())
}

func TestVersions(t *testing.T) {
	sdk, _ := newTestSDK(t, nil)
	ctx := context.Background()

	v, err := sdk.ServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, version.Version, v)

	api, err := sdk.APIVersion(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, api)
}

func TestBrowseAndLookup(t *testing.T) {
	sdk, root := newTestSDK(t, nil)
	ctx := context.Background()
	writeFile(t, root, "b.txt", "bee")
	writeFile(t, root, "dir/a.txt", "a")

	dir, err := sdk.Browse(ctx, pfs.RootPath())
	require.NoError(t, err)
	require.Len(t, dir.Items, 2)
	assert.Equal(t, "dir", dir.Items[0].Name)
	assert.True(t, dir.Items[0].Stats.IsDirectory)
	assert.Equal(t, "b.txt", dir.Items[1].Name)
	assert.Equal(t, uint64(3), dir.Items[1].Stats.Size)
	require.NotNil(t, dir.Items[1].Stats.Digest)

	_, err = sdk.Browse(ctx, pfs.MustPath("missing"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidArgument))

	item, err := sdk.Lookup(ctx, pfs.MustPath("dir", "a.txt"))
	require.NoError(t, err)
	require.NotNil(t, item.Stats)
	assert.Equal(t, uint64(1), item.Stats.Size)
	assert.NotNil(t, item.Stats.Digest)

	item, err = sdk.Lookup(ctx, pfs.MustPath("nope"))
	require.NoError(t, err)
	assert.Nil(t, item.Stats)
}

func TestExchangeDeltas(t *testing.T) {
	sdk, root := newTestSDK(t, func(c *server.Config) {
		c.Store.ChunkSize = 2
	})
	ctx := context.Background()
	writeFile(t, root, "file1.txt", "1")
	writeFile(t, root, "dir1/file2.txt", "2")
	writeFile(t, root, "dir1/dir2/file3.txt", "3")

	var sizes []int
	var paths []string
	err := sdk.ExchangeDeltas(ctx, &pfs.SyncRequest{Dest: pfs.RootPath()}, func(batch []pfs.SyncItem) error {
		sizes = append(sizes, len(batch))
		for _, item := range batch {
			paths = append(paths, item.Path.String())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.ElementsMatch(t, []string{"file1.txt", "dir1", "dir1/file2.txt", "dir1/dir2", "dir1/dir2/file3.txt"}, paths)

	items, err := sdk.Recurse(ctx, pfs.MustPath("dir1"))
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = sdk.Recurse(ctx, pfs.MustPath("missing"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExchangeDeltasCallbackError(t *testing.T) {
	sdk, root := newTestSDK(t, func(c *server.Config) {
		c.Store.ChunkSize = 1
	})
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "b.txt", "b")

	stop := assert.AnError
	calls := 0
	err := sdk.ExchangeDeltas(context.Background(), &pfs.SyncRequest{Dest: pfs.RootPath()}, func([]pfs.SyncItem) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestUploadDownloadDelete(t *testing.T) {
	sdk, root := newTestSDK(t, nil)
	ctx := context.Background()

	mtime := time.Date(2022, 2, 2, 10, 20, 30, 400_000_000, time.UTC)
	stats := &pfs.FileStat{Size: 5, MTime: pfs.FormatTime(mtime)}
	params := &UploadParams{
		Dir:   pfs.MustPath("docs"),
		Name:  "a.txt",
		Data:  []byte("hello"),
		Stats: stats,
	}
	require.NoError(t, sdk.Upload(ctx, params))

	info, err := os.Stat(filepath.Join(root, "docs", "a.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	err = sdk.Upload(ctx, params)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeAlreadyExists))

	params.Data = []byte("world")
	params.Overwrite = true
	require.NoError(t, sdk.Upload(ctx, params))

	data, name, err := sdk.Download(ctx, pfs.MustPath("docs", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))
	assert.Equal(t, "a.txt", name)

	local := filepath.Join(t.TempDir(), "out", "a.txt")
	require.NoError(t, sdk.DownloadFile(ctx, pfs.MustPath("docs", "a.txt"), local))
	got, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))

	require.NoError(t, sdk.Delete(ctx, pfs.MustPath("docs", "a.txt")))
	_, err = os.Stat(filepath.Join(root, "docs", "a.txt"))
	assert.True(t, os.IsNotExist(err))

	err = sdk.Delete(ctx, pfs.MustPath("docs", "a.txt"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidArgument))

	_, _, err = sdk.Download(ctx, pfs.MustPath("docs"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidArgument))
}

func TestUploadFile(t *testing.T) {
	sdk, root := newTestSDK(t, nil)
	ctx := context.Background()

	local := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(local, []byte("# notes"), 0o644))
	mtime := time.Date(2021, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(local, mtime, mtime))

	require.NoError(t, sdk.UploadFile(ctx, local, pfs.RootPath(), false))
	info, err := os.Stat(filepath.Join(root, "notes.md"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	err = sdk.UploadFile(ctx, filepath.Join(t.TempDir(), "missing"), pfs.RootPath(), false)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestCacheStats(t *testing.T) {
	sdk, root := newTestSDK(t, nil)
	ctx := context.Background()
	writeFile(t, root, "a.txt", "a")

	_, err := sdk.Browse(ctx, pfs.RootPath())
	require.NoError(t, err)
	_, err = sdk.Browse(ctx, pfs.RootPath())
	require.NoError(t, err)

	stats, err := sdk.CacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestDecodeBatchesIgnoresOtherEvents(t *testing.T) {
	stream := "event:ping\ndata:{}\n\n" +
		"event:batch\ndata:[{\"path\":{\"components\":[\"a\"]},\"stats\":null}]\n\n" +
		"event:batch\ndata:[]\n"

	var batches [][]pfs.SyncItem
	err := decodeBatches(strings.NewReader(stream), func(batch []pfs.SyncItem) error {
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, batches, 2)
	require.Len(t, batches[0], 1)
	assert.Equal(t, "a", batches[0][0].Path.String())
	assert.Nil(t, batches[0][0].Stats)
	assert.Empty(t, batches[1])
}

func TestDecodeBatchesBadJSON(t *testing.T) {
	err := decodeBatches(strings.NewReader("event:batch\ndata:{not json\n\n"), func([]pfs.SyncItem) error {
		return nil
	})
	assert.Error(t, err)
}
