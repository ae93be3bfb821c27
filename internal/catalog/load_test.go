package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type stubLister struct {
	products []Product
	err      error
	calls    int
}

func (s *stubLister) List(context.Context) ([]Product, error) {
	s.calls++
	return s.products, s.err
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(`[{"id":1,"name":"A","price":1000,"image":"/a.png"},{"name":"B","price":5}]`), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"})
	lister := &stubLister{}

	c, err := Load(context.Background(), config.CatalogConfig{Source: "file", Path: path}, lister, logg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Len())
	}
	if lister.calls != 0 {
		t.Fatalf("file source must not hit the database")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"unaddressable":1`)) {
		t.Fatalf("expected unaddressable count in log, got %s", buf.String())
	}
}

func TestLoadFromDatabase(t *testing.T) {
	lister := &stubLister{products: []Product{{ID: "1", Name: "A", Price: decimal.NewFromInt(1)}}}

	c, err := Load(context.Background(), config.CatalogConfig{Source: "db"}, lister, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Lookup("1"); !ok {
		t.Fatalf("expected product 1 to be loaded")
	}

	failing := &stubLister{err: errors.New("db down")}
	if _, err := Load(context.Background(), config.CatalogConfig{Source: "db"}, failing, nil); err == nil {
		t.Fatal("expected lister error to propagate")
	}
	if _, err := Load(context.Background(), config.CatalogConfig{Source: "db"}, nil, nil); err == nil {
		t.Fatal("expected error without lister")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), config.CatalogConfig{Source: "file", Path: filepath.Join(t.TempDir(), "nope.json")}, nil, nil)
	if err == nil {
		t.Fatal("expected missing file error")
	}
}
