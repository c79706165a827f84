package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
)

func writeAsset(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
}

func staticManifest() *nextjs.Manifest {
	return &nextjs.Manifest{
		Origins: map[string]nextjs.Origin{
			nextjs.OriginS3: {
				Type:       "s3",
				OriginPath: "_assets",
				Copy: []nextjs.CopyOperation{
					{From: ".open-next/assets", To: "", Cached: true, VersionedSubDir: "_next"},
					{From: ".open-next/cache", To: "_cache", Cached: false},
				},
			},
			nextjs.OriginDefault: {Type: "function"},
		},
	}
}

func TestSync(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, ".open-next/assets/index.html")
	writeAsset(t, root, ".open-next/assets/_next/chunk.js")
	writeAsset(t, root, ".open-next/cache/fetch/entry")

	mock := &MockUploader{BaseURL: "https://cdn.test"}
	urls, err := Sync(context.Background(), mock, root, staticManifest())
	require.NoError(t, err)
	require.Len(t, urls, 3)

	// keys combine origin path, copy destination, and relative path
	assert.Equal(t, "https://cdn.test/_assets/index.html", urls["_assets/index.html"])
	assert.Contains(t, urls, "_assets/_next/chunk.js")
	assert.Contains(t, urls, "_assets/_cache/fetch/entry")

	// content types resolved per file
	assert.Equal(t, "text/html;charset=utf-8", mock.Objects["_assets/index.html"].ContentType)
	assert.Equal(t, "text/javascript;charset=utf-8", mock.Objects["_assets/_next/chunk.js"].ContentType)
	assert.Equal(t, "application/octet-stream", mock.Objects["_assets/_cache/fetch/entry"].ContentType)

	// only the versioned subtree of a cached copy entry is immutable
	assert.Equal(t, cacheControlVersioned, mock.Objects["_assets/_next/chunk.js"].CacheControl)
	assert.Equal(t, cacheControlUnversioned, mock.Objects["_assets/index.html"].CacheControl)
	assert.Equal(t, cacheControlUnversioned, mock.Objects["_assets/_cache/fetch/entry"].CacheControl)
}

func TestSyncMissingSourceDir(t *testing.T) {
	mock := &MockUploader{}
	_, err := Sync(context.Background(), mock, t.TempDir(), staticManifest())
	assert.Error(t, err)
}
