package spec

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swaggo/swag"

	"github.com/apidocs/docsmount/internal/cache"
)

type swagDoc string

func init() {
	swag.Register("spec-test", swagDoc(`{ "swagger": "2.0", "paths": {} }`))
}

func (d swagDoc) ReadDoc() string {
	return string(d)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]byte("  {\n  \"openapi\": \"3.0.0\"\n}\n"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if string(got) != `{"openapi":"3.0.0"}` {
		t.Fatalf("unexpected doc: %s", got)
	}

	for _, raw := range []string{"", "[]", `"openapi"`, `{"openapi":`} {
		if _, err := Normalize([]byte(raw)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument for %q, got %v", raw, err)
		}
	}
}

func TestSwagSource(t *testing.T) {
	doc, err := SwagSource{Instance: "spec-test"}.Document(context.Background())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if string(doc) != `{"swagger":"2.0","paths":{}}` {
		t.Fatalf("unexpected doc: %s", doc)
	}

	if _, err := (SwagSource{Instance: "spec-test-missing"}).Document(context.Background()); err == nil {
		t.Fatalf("expected error for unregistered instance")
	}
}

func TestFileSourceJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := os.WriteFile(path, []byte(`{"openapi": "3.0.0"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := FileSource{Path: path}.Document(context.Background())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if string(doc) != `{"openapi":"3.0.0"}` {
		t.Fatalf("unexpected doc: %s", doc)
	}
}

func TestFileSourceYAML(t *testing.T) {
	content := `openapi: 3.0.0
info:
  title: Orders
paths:
  /orders:
    get:
      responses:
        200:
          description: ok
`
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := FileSource{Path: path}.Document(context.Background())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	want := `{"info":{"title":"Orders"},"openapi":"3.0.0","paths":{"/orders":{"get":{"responses":{"200":{"description":"ok"}}}}}}`
	if string(doc) != want {
		t.Fatalf("unexpected doc:\n got %s\nwant %s", doc, want)
	}
}

func TestFileSourceMissing(t *testing.T) {
	if _, err := (FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}).Document(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"openapi": "3.1.0"}`))
	}))
	defer srv.Close()

	doc, err := HTTPSource{URL: srv.URL + "/openapi.json"}.Document(context.Background())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if string(doc) != `{"openapi":"3.1.0"}` {
		t.Fatalf("unexpected doc: %s", doc)
	}

	if _, err := (HTTPSource{URL: srv.URL + "/missing"}).Document(context.Background()); err == nil {
		t.Fatalf("expected error for 404 upstream")
	}
}

func TestHTTPSourceRejectsOversizedDocument(t *testing.T) {
	big := `{"openapi":"3.0.0","x-pad":"` + strings.Repeat("a", 4096) + `"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/chunked" {
			// No Content-Length: the limit has to trip while reading.
			w.(http.Flusher).Flush()
		}
		_, _ = w.Write([]byte(big))
	}))
	defer srv.Close()

	for _, path := range []string{"/sized", "/chunked"} {
		_, err := HTTPSource{URL: srv.URL + path, MaxBytes: 1024}.Document(context.Background())
		if !errors.Is(err, ErrDocumentTooLarge) {
			t.Fatalf("%s: expected ErrDocumentTooLarge, got %v", path, err)
		}
	}

	doc, err := HTTPSource{URL: srv.URL + "/sized", MaxBytes: int64(len(big))}.Document(context.Background())
	if err != nil {
		t.Fatalf("document at exact limit: %v", err)
	}
	if !strings.Contains(string(doc), `"x-pad"`) {
		t.Fatalf("unexpected doc: %.80s", doc)
	}
}

type failingStore struct {
	*cache.FileStore
	err error
}

func (s failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, s.err
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	src := CachedSource{Store: store, Key: "api-docs", Fallback: Static([]byte(`{"live":true}`))}

	doc, err := src.Document(ctx)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if string(doc) != `{"live":true}` {
		t.Fatalf("expected fallback on miss, got %s", doc)
	}

	if err := store.Put(ctx, "api-docs", []byte(`{"cached":true}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	doc, err = src.Document(ctx)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if string(doc) != `{"cached":true}` {
		t.Fatalf("expected cached doc, got %s", doc)
	}

	boom := errors.New("disk on fire")
	src.Store = failingStore{err: boom}
	if _, err := src.Document(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}

func TestGenerator(t *testing.T) {
	cases := []struct {
		source string
		want   any
	}{
		{"", SwagSource{Instance: "swagger"}},
		{"swag", SwagSource{Instance: "swagger"}},
		{"file:openapi.yaml", FileSource{Path: "openapi.yaml"}},
		{"https://gen.internal/openapi.json", HTTPSource{URL: "https://gen.internal/openapi.json"}},
	}
	for _, tc := range cases {
		got, err := Generator(tc.source, "swagger")
		if err != nil {
			t.Fatalf("generator %q: %v", tc.source, err)
		}
		if got != tc.want {
			t.Fatalf("generator %q: got %#v, want %#v", tc.source, got, tc.want)
		}
	}

	for _, bad := range []string{"file:", "ftp://x", "swagger.json"} {
		if _, err := Generator(bad, "swagger"); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFromConfigWrapsCache(t *testing.T) {
	store, err := cache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	src, err := FromConfig("swag", "swagger", store, "api-docs")
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if _, ok := src.(CachedSource); !ok {
		t.Fatalf("expected CachedSource, got %T", src)
	}

	src, err = FromConfig("swag", "swagger", nil, "api-docs")
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if _, ok := src.(SwagSource); !ok {
		t.Fatalf("expected SwagSource without store, got %T", src)
	}
}
