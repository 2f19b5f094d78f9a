package boxfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/masonry/pkg/errors"
)

// Write encodes boxes to w. The output can be read back with [Read].
func Write(w io.Writer, boxes []Box, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlFile{Boxes: boxes}); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonFile{Boxes: boxes}); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported box file format %q", format)
	}
	return nil
}

// Export writes boxes to path in the format matching its extension.
func Export(path string, boxes []Box) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, boxes, format)
}
