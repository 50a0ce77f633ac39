package config

import _ "embed"

//go:embed samples/envup.toml
var sampleManifest []byte

// Sample returns a starter manifest, used by `envup genconfig`.
func Sample() []byte {
	out := make([]byte, len(sampleManifest))
	copy(out, sampleManifest)
	return out
}
