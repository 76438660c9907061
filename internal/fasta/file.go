package fasta

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// ReadFile parses every record from a FASTA file. Files ending in .gz are
// decompressed transparently. The file is read whole; parsing itself never
// fails, so any error is a filesystem or decompression error.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA file %s: %w", path, err)
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
		return nil, fmt.Errorf("failed to read FASTA file %s: %w", path, err)
	}

	return Parse(string(data)), nil
}

// WriteFile serializes records to a FASTA file with the given line width.
func WriteFile(path string, records []Record, width int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create FASTA file %s: %w", path, err)
	}

	if err := Write(f, records, width); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write FASTA file %s: %w", path, err)
	}
	return nil
}
