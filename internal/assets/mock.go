package assets

import "context"

// MockUploader records uploads for tests and dry runs.
type MockUploader struct {
	BaseURL string
	Objects map[string]ObjectOptions // key -> headers
}

func (m *MockUploader) Upload(_ context.Context, _, key string, opts ObjectOptions) (string, error) {
	if m.Objects == nil {
		m.Objects = make(map[string]ObjectOptions)
	}
	m.Objects[key] = opts

	base := m.BaseURL
	if base == "" {
		base = "https://cdn.example.com"
	}
	return base + "/" + key, nil
}
