package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliskhannn/kanji-cards/internal/assets"
	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Source yields the raw kanji sequence.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]entities.Kanji, error)
}

// FileSource reads the dataset from a JSON or XLSX file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Load reads and decodes the file. The format is chosen by extension.
func (s *FileSource) Load(ctx context.Context) ([]entities.Kanji, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".json":
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		return decodeKanjiJSON(data)
	case ".xlsx":
		return readWorkbook(s.path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.path)
	}
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct {
	data []byte
}

// NewEmbeddedSource creates a source over the built-in fallback dataset.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{data: assets.FallbackKanji}
}

func (s *EmbeddedSource) Name() string {
	return "embedded"
}

func (s *EmbeddedSource) Load(ctx context.Context) ([]entities.Kanji, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeKanjiJSON(s.data)
}

// decodeKanjiJSON accepts a bare array of records or an object wrapping it under "kanji".
// Elements that are not records decode as empty records, which Load drops with a warning.
func decodeKanjiJSON(data []byte) ([]entities.Kanji, error) {
	data = bytes.TrimSpace(data)

	var elements []json.RawMessage
	if len(data) > 0 && data[0] == '{' {
		var wrapper struct {
			Kanji []json.RawMessage `json:"kanji"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to unmarshal kanji JSON: %w", err)
		}
		elements = wrapper.Kanji
	} else if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kanji JSON: %w", err)
	}

	list := make([]entities.Kanji, len(elements))
	for i, el := range elements {
		var k entities.Kanji
		if err := json.Unmarshal(el, &k); err != nil {
			continue
		}
		list[i] = k
	}
	return list, nil
}
