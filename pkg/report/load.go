package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a report.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrUnsupportedFormat indicates a report encoding this package cannot read.
	ErrUnsupportedFormat = errors.New("unsupported report format")

	// ErrUnsupportedVersion indicates a report written for another schema version.
	ErrUnsupportedVersion = errors.New("unsupported report version")

	// ErrMissingPath indicates a file entry without a document path.
	ErrMissingPath = errors.New("file entry has no path")
)

// FormatFromPath infers the report format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates the report at path.
func Load(path string) (*Report, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	rep, err := Decode(bytes.NewReader(content), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rep.Path = path

	return rep, nil
}

// Decode reads a report in the given format from r and validates it.
func Decode(r io.Reader, format Format) (*Report, error) {
	rep := &Report{}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(rep); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(rep); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case FormatTOML:
		meta, err := toml.NewDecoder(r).Decode(rep)
		if err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for idx, key := range undecoded {
				keys[idx] = key.String()
			}
			return nil, fmt.Errorf("parse TOML: unknown fields %s", strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := rep.validate(); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Report) validate() error {
	if r.Version == 0 {
		r.Version = CurrentVersion
	}
	if r.Version != CurrentVersion {
		return fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, r.Version, CurrentVersion)
	}

	for idx, f := range r.Files {
		if strings.TrimSpace(f.Path) == "" {
			return fmt.Errorf("files[%d]: %w", idx, ErrMissingPath)
		}
	}
	return nil
}

// Dir returns the directory relative document paths resolve against.
func (r *Report) Dir() string {
	if r.Path == "" {
		return "."
	}
	return filepath.Dir(r.Path)
}

// ResolvePath returns the document path for f.
func (r *Report) ResolvePath(f File) string {
	if filepath.IsAbs(f.Path) {
		return filepath.Clean(f.Path)
	}
	return filepath.Join(r.Dir(), f.Path)
}

// Lookup returns the entry whose resolved path matches path. Relative
// paths are compared in absolute form against the working directory.
func (r *Report) Lookup(path string) (File, bool) {
	want := CanonicalPath(path)
	for _, f := range r.Files {
		if CanonicalPath(r.ResolvePath(f)) == want || filepath.Clean(f.Path) == filepath.Clean(path) {
			return f, true
		}
	}
	return File{}, false
}

// CanonicalPath returns the absolute, cleaned form of path. Two paths
// naming the same document from different directories compare equal.
func CanonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
