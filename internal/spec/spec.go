// Package spec produces the API description document served by the docs
// routes. A Source is the generator; the docs handlers only expose its output.
package spec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/apidocs/docsmount/internal/cache"
)

var ErrInvalidDocument = errors.New("spec document must be a JSON object")

type Source interface {
	Document(ctx context.Context) ([]byte, error)
}

// Normalize compacts raw JSON and checks that it is an object.
func Normalize(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidDocument
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return buf.Bytes(), nil
}

type static []byte

// Static serves doc as-is. doc must already be compact JSON.
func Static(doc []byte) Source {
	return static(doc)
}

func (s static) Document(ctx context.Context) ([]byte, error) {
	return []byte(s), nil
}

// FromConfig picks the generator named by source ("swag", "file:<path>" or an
// http(s) URL) and, when store is non-nil, puts the artifact cache in front of it.
func FromConfig(source, swagInstance string, store cache.Store, key string) (Source, error) {
	gen, err := Generator(source, swagInstance)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return gen, nil
	}
	return CachedSource{Store: store, Key: key, Fallback: gen}, nil
}

// Generator returns the live generator for source, bypassing any cache.
func Generator(source, swagInstance string) (Source, error) {
	switch {
	case source == "" || source == "swag":
		return SwagSource{Instance: swagInstance}, nil
	case strings.HasPrefix(source, "file:"):
		path := strings.TrimPrefix(source, "file:")
		if path == "" {
			return nil, errors.New("file source requires a path")
		}
		return FileSource{Path: path}, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return HTTPSource{URL: source}, nil
	default:
		return nil, fmt.Errorf("unknown docs source %q", source)
	}
}
