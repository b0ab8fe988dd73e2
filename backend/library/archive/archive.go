// Package archive builds ZIP archives from already-fetched content, keeping
// the network I/O out of the packing logic.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

type Item struct {
	Name string
	Data []byte
}

// Build packs the items into a ZIP archive. ZIP readers do not handle
// duplicate entry names safely, so colliding names get a " (n)" suffix before
// the extension, in input order.
func Build(items []Item) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		name := uniqueName(seen, item.Name)
		seen[name] = true

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(item.Data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func uniqueName(seen map[string]bool, name string) string {
	if name == "" {
		name = "file"
	}
	if !seen[name] {
		return name
	}
	ext := ""
	base := name
	if idx := strings.LastIndex(name, "."); idx > 0 {
		base, ext = name[:idx], name[idx:]
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if !seen[candidate] {
			return candidate
		}
	}
}
