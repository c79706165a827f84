// Package assets uploads a built site's static files to the origin store
// described by its deployment manifest.
package assets

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/opennext-tools/nextdeploy-cli/internal/contenttype"
	"github.com/opennext-tools/nextdeploy-cli/internal/ctxlog"
	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
)

// Cache-control values for static origin objects. Files under a versioned
// subdirectory are content-hashed by the framework and never change.
const (
	cacheControlVersioned   = "public,max-age=31536000,immutable"
	cacheControlUnversioned = "public,max-age=0,s-maxage=86400,stale-while-revalidate=8640"
)

// ObjectOptions are the per-object headers set on upload.
type ObjectOptions struct {
	ContentType  string
	CacheControl string
}

// Uploader puts one local file into the remote store under the given key and
// returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath, key string, opts ObjectOptions) (string, error)
}

// Sync uploads every copy entry of the manifest's static origin found under
// outputRoot. It returns a map of object key to public URL.
func Sync(ctx context.Context, upl Uploader, outputRoot string, manifest *nextjs.Manifest) (map[string]string, error) {
	origin, ok := manifest.Origins[nextjs.OriginS3]
	if !ok {
		return nil, fmt.Errorf("manifest has no %q origin", nextjs.OriginS3)
	}

	log := ctxlog.FromContext(ctx)
	result := make(map[string]string)

	for _, op := range origin.Copy {
		srcRoot := filepath.Join(outputRoot, filepath.FromSlash(op.From))
		err := filepath.WalkDir(srcRoot, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(srcRoot, p)
			if err != nil {
				return err
			}
			key := objectKey(origin.OriginPath, op.To, rel)

			opts := ObjectOptions{
				ContentType:  contenttype.Resolve(p, "utf-8"),
				CacheControl: cacheControl(op, rel),
			}
			url, err := upl.Upload(ctx, p, key, opts)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", key, err)
			}
			log.Debug("uploaded asset", "key", key, "contentType", opts.ContentType)
			result[key] = url
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// objectKey joins origin path, copy destination, and the file's relative
// path into a clean slash-separated key.
func objectKey(originPath, to, rel string) string {
	key := path.Join(strings.TrimPrefix(originPath, "/"), to, filepath.ToSlash(rel))
	return strings.TrimPrefix(key, "/")
}

// cacheControl picks the caching policy for one object. Only cached copy
// entries get long-lived headers, and only their versioned subtree is marked
// immutable.
func cacheControl(op nextjs.CopyOperation, rel string) string {
	if !op.Cached {
		return cacheControlUnversioned
	}
	if op.VersionedSubDir != "" && strings.HasPrefix(filepath.ToSlash(rel), op.VersionedSubDir+"/") {
		return cacheControlVersioned
	}
	return cacheControlUnversioned
}
