package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  name: shop
  stage: prod
sites:
  - name: web
    path: packages/web
    links: [MyBucket]
  - name: docs
    path: packages/docs
    build_command: yarn turbo build
    env:
      NEXT_TELEMETRY_DISABLED: "1"
links:
  MyBucket:
    name: my-bucket-x1y2
build:
  concurrency: 2
  open_next_version: 3.0.2
upload:
  provider: minio
  bucket: shop-assets
  endpoint: http://localhost:9000
`))
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.App.Name)
	assert.Equal(t, "prod", cfg.App.Stage)
	require.Len(t, cfg.Sites, 2)
	assert.Equal(t, []string{"MyBucket"}, cfg.Sites[0].Links)
	assert.Equal(t, "yarn turbo build", cfg.Sites[1].BuildCommand)
	assert.Equal(t, int64(2), cfg.Build.Concurrency)
	assert.Equal(t, "minio", cfg.Upload.Provider)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  name: shop
sites:
  - name: web
    path: packages/web
`))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Stage)
	assert.Equal(t, int64(4), cfg.Build.Concurrency)
	assert.Equal(t, "s3", cfg.Upload.Provider)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing app name", "sites: []", "app.name is required"},
		{"missing site path", "app: {name: a}\nsites: [{name: web}]", "path is required"},
		{"duplicate site", "app: {name: a}\nsites: [{name: w, path: p}, {name: w, path: q}]", "duplicate site"},
		{"unknown link", "app: {name: a}\nsites: [{name: w, path: p, links: [Nope]}]", `unknown link "Nope"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestGetSite(t *testing.T) {
	cfg := &Config{Sites: []Site{{Name: "web", Path: "p"}}}

	site, err := cfg.GetSite("web")
	require.NoError(t, err)
	assert.Equal(t, "p", site.Path)

	_, err = cfg.GetSite("missing")
	assert.Error(t, err)
}
