package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tripdeck/models"
)

// FileLoader reads a catalog from a JSON seed file shaped like models.Catalog.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (*models.Catalog, error) {
	if l.Path == "" {
		return nil, ErrEmptySource
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var c models.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", l.Path, err)
	}
	return normalize(&c), nil
}
