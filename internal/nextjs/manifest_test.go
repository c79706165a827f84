package nextjs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `{
  "edgeFunctions": {
    "middleware": {
      "handler": "index.handler",
      "bundle": ".open-next/middleware",
      "pathResolver": "resolve"
    }
  },
  "origins": {
    "s3": {
      "type": "s3",
      "originPath": "_assets",
      "copy": [
        {"from": ".open-next/assets", "to": "_assets", "cached": true, "versionedSubDir": "_next"},
        {"from": ".open-next/cache", "to": "_cache", "cached": false}
      ]
    },
    "default": {
      "type": "function",
      "handler": "index.handler",
      "bundle": ".open-next/server-functions/default",
      "wrapper": "aws-lambda-streaming",
      "converter": "aws-apigw-v2",
      "streaming": true,
      "queue": "sqs-lite",
      "incrementalCache": "s3-lite",
      "tagCache": "dynamodb-lite"
    },
    "imageOptimizer": {
      "type": "function",
      "handler": "index.handler",
      "bundle": ".open-next/image-optimization-function",
      "imageLoader": "s3"
    }
  },
  "behaviors": [
    {"pattern": "_next/image*", "origin": "imageOptimizer"},
    {"pattern": "_next/data/*", "origin": "default", "edgeFunction": "middleware"},
    {"pattern": "*", "origin": "default", "edgeFunction": "middleware"}
  ],
  "additionalProps": {
    "disableIncrementalCache": false,
    "initializationFunction": {"handler": "wrong.handler", "bundle": "wrong-bundle"},
    "warmer": {"handler": "index.handler", "bundle": ".open-next/warmer-function"}
  }
}`

func writeOutput(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".open-next")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "open-next.output.json"), []byte(content), 0644))
	return root
}

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest(writeOutput(t, sampleOutput))
	require.NoError(t, err)

	mw := m.EdgeFunctions[MiddlewareFunction]
	assert.Equal(t, ".open-next/middleware", mw.Bundle)
	assert.Equal(t, "resolve", mw.PathResolver)

	s3 := m.Origins[OriginS3]
	assert.Equal(t, "s3", s3.Type)
	require.Len(t, s3.Copy, 2)
	assert.True(t, s3.Copy[0].Cached)
	assert.Equal(t, "_next", s3.Copy[0].VersionedSubDir)

	def := m.Origins[OriginDefault]
	assert.Equal(t, "function", def.Type)
	assert.True(t, def.Streaming)
	assert.Equal(t, "dynamodb-lite", def.TagCache)

	img := m.Origins[OriginImageOptimizer]
	assert.Equal(t, "s3", img.ImageLoader)

	require.Len(t, m.Behaviors, 3)
	assert.Equal(t, "_next/image*", m.Behaviors[0].Pattern)
	assert.Equal(t, "*", m.Behaviors[2].Pattern)
}

func TestLoadManifestPatchesInitializationFunction(t *testing.T) {
	// handler/bundle are overwritten regardless of what open-next emitted
	m, err := LoadManifest(writeOutput(t, sampleOutput))
	require.NoError(t, err)

	init := m.AdditionalProps.InitializationFunction
	require.NotNil(t, init)
	assert.Equal(t, "index.handler", init.Handler)
	assert.Equal(t, ".open-next/dynamodb-provider", init.Bundle)

	// other auxiliary functions pass through untouched
	assert.Equal(t, ".open-next/warmer-function", m.AdditionalProps.Warmer.Bundle)
}

func TestLoadManifestMissingFile(t *testing.T) {
	root := t.TempDir()
	_, err := LoadManifest(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(root, ".open-next", "open-next.output.json"))
}

func TestLoadManifestInvalidJSON(t *testing.T) {
	_, err := LoadManifest(writeOutput(t, "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoadManifestMissingReservedOrigin(t *testing.T) {
	_, err := LoadManifest(writeOutput(t, `{"origins":{"default":{"type":"function"}},"behaviors":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"s3"`)
}
