package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		filename string
		encoding string
		want     string
	}{
		{"site.html", "utf-8", "text/html;charset=utf-8"},
		{"assets/main.css", "utf-8", "text/css;charset=utf-8"},
		{"logo.png", "utf-8", "image/png"},
		{"font/inter.woff2", "utf-8", "font/woff2"},
		{"data.json", "utf-8", "application/json;charset=utf-8"},
		{"archive.unknownext", "utf-8", "application/octet-stream"},
		{"no-extension", "utf-8", "application/octet-stream"},
		{"chunk.JS", "utf-8", "text/javascript;charset=utf-8"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Resolve(c.filename, c.encoding), "filename %q", c.filename)
	}
}

func TestResolveSiteAssociation(t *testing.T) {
	// apple-app-site-association style files have no real extension but are JSON
	got := Resolve(".well-known/site-association-json", "utf-8")
	assert.Equal(t, "application/json;charset=utf-8", got)

	got = Resolve("dist/.well-known/site-association-json", "utf-8")
	assert.Equal(t, "application/json;charset=utf-8", got)
}

func TestResolveNoEncoding(t *testing.T) {
	// text types drop the charset parameter when encoding is disabled
	assert.Equal(t, "text/html", Resolve("index.html", NoEncoding))
	assert.Equal(t, "image/png", Resolve("logo.png", NoEncoding))
}
