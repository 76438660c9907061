package genbank

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// ReadFile parses every record from a GenBank file. Files ending in .gz
// are decompressed transparently. Parsing itself is lenient, so any error
// is a filesystem or decompression error.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GenBank file %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GenBank file %s: %w", path, err)
	}

	return Parse(string(data)), nil
}
