// Package library lists local study material directories for the
// file browser surface.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Item is one directory entry.
type Item struct {
	Name        string `json:"name"`
	IsDirectory bool   `json:"isDirectory"`
	Path        string `json:"path"`
}

// List returns the entries of dir, directories first, each sorted by
// name.
func List(dir string) ([]Item, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			Name:        e.Name(),
			IsDirectory: e.IsDir(),
			Path:        filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].IsDirectory != items[j].IsDirectory {
			return items[i].IsDirectory
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}
