package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	mkerrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

// Format is a wire encoding for element maps.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", mkerrors.New("M011").
			WithDetailf("cannot tell the format of %q", path).
			WithSuggestion("Rename the file to .json, .yaml or .yml")
	}
}

func malformed(err error) error {
	return mkerrors.New("M010").
		WithDetail(err.Error()).
		Wrap(markup.ErrInvalidArgument)
}

// Decode reads one element map from r.
func Decode(r io.Reader, f Format) (markup.ElementMap, error) {
	var m markup.ElementMap
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return markup.ElementMap{}, malformed(err)
		}
		if dec.More() {
			return markup.ElementMap{}, malformed(errors.New("trailing data after element map"))
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("empty document")
			}
			return markup.ElementMap{}, malformed(err)
		}
	default:
		return markup.ElementMap{}, unsupported(f)
	}
	return m, nil
}

// Encode writes m to w. JSON output is indented with two spaces.
func Encode(w io.Writer, m markup.ElementMap, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(m)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return unsupported(f)
	}
}

// Marshal returns the encoding of m.
func Marshal(m markup.ElementMap, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes an element map from data.
func Unmarshal(data []byte, f Format) (markup.ElementMap, error) {
	return Decode(bytes.NewReader(data), f)
}

func unsupported(f Format) error {
	return mkerrors.New("M011").WithDetailf("unknown format %q", string(f))
}

// ReadFile decodes the element map stored at path.
func ReadFile(path string) (markup.ElementMap, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return markup.ElementMap{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return markup.ElementMap{}, err
	}
	defer file.Close()

	m, err := Decode(file, f)
	if err != nil {
		var me *mkerrors.MarkupError
		if errors.As(err, &me) && me.Path == "" {
			me.Path = path
		}
		return markup.ElementMap{}, err
	}
	return m, nil
}

// WriteFile encodes m into path, choosing the format from its extension.
func WriteFile(path string, m markup.ElementMap) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(m, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads path and builds its tree in a. The returned error keeps the
// codes from decoding and from FromMap.
func Load(a *markup.Arena, path string) (markup.NodeID, error) {
	m, err := ReadFile(path)
	if err != nil {
		return markup.NoNode, err
	}
	return a.FromMap(m)
}
