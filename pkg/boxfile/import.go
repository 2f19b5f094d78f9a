package boxfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// Format is a box file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Box is one entry of a box file.
type Box struct {
	Key    string  `toml:"key" json:"key"`
	Span   int     `toml:"span,omitempty" json:"span,omitempty"`
	Height float64 `toml:"height,omitempty" json:"height,omitempty"`
	Title  string  `toml:"title,omitempty" json:"title,omitempty"`
	Author string  `toml:"author,omitempty" json:"author,omitempty"`
	Genre  string  `toml:"genre,omitempty" json:"genre,omitempty"`
	Body   string  `toml:"body,omitempty" json:"body,omitempty"`
}

type tomlFile struct {
	Boxes []Box `toml:"box"`
}

type jsonFile struct {
	Boxes []Box `json:"boxes"`
}

// FormatFor picks the format from a path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported box file extension %q (want .toml or .json)", filepath.Ext(path))
}

// Read decodes and validates boxes from r.
//
// Read returns an error if the input is malformed, a key is missing,
// malformed or duplicated, or a span or height is negative. It does not
// close r.
func Read(r io.Reader, format Format) ([]Box, error) {
	var boxes []Box
	switch format {
	case FormatTOML:
		var f tomlFile
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown box field %s", undecoded[0])
		}
		boxes = f.Boxes
	case FormatJSON:
		var f jsonFile
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
		boxes = f.Boxes
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported box file format %q", format)
	}

	if err := Validate(boxes); err != nil {
		return nil, err
	}
	return boxes, nil
}

// Import reads the box file at path. The format follows the extension.
func Import(path string) ([]Box, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "box file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	boxes, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return boxes, nil
}

// Validate checks every box and reports the first problem.
func Validate(boxes []Box) error {
	seen := make(map[string]int, len(boxes))
	for i, b := range boxes {
		if b.Key == "" {
			return errors.MissingKey(i)
		}
		if err := errors.ValidateKey(b.Key); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
		if first, ok := seen[b.Key]; ok {
			return errors.DuplicateKey(b.Key, first, i)
		}
		seen[b.Key] = i
		if err := errors.ValidateSpan(b.Key, b.Span); err != nil {
			return err
		}
		if err := errors.ValidateHeight(b.Key, b.Height); err != nil {
			return err
		}
	}
	return nil
}

// Elements adapts boxes to layout elements using their declared heights.
func Elements(boxes []Box) []masonry.Element {
	out := make([]masonry.Element, len(boxes))
	for i, b := range boxes {
		out[i] = masonry.NewElement(b.Key, b.Span, b.Height)
	}
	return out
}
