package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultBrandConfig []byte

// GetDefaultsContent returns the embedded default brand constants
func GetDefaultsContent() string {
	return string(defaultBrandConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
