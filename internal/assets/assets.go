// Package assets holds data compiled into the binary.
package assets

import _ "embed"

// FallbackKanji is the dataset used when no external data file can be read.
//
//go:embed fallback.json
var FallbackKanji []byte
