// Package load decodes schema IR documents into a resolved *schema.Schema.
//
// Documents are JSON, YAML or msgpack; the format follows the file
// extension. Loading resolves every type reference and rejects types the
// IR cannot express, but does no further validation of the schema.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/flatgen/schema"
)

// Format is the encoding of an IR document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatMsgpack
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// extensions maps file extensions to formats.
var extensions = map[string]Format{
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".msgpack": FormatMsgpack,
	".mpk":     FormatMsgpack,
}

// FormatOf returns the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads and resolves the IR document at path.
func Load(path string) (*schema.Schema, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	s, err := Decode(data, f)
	if err != nil {
		if le, ok := err.(*Error); ok {
			le.Path = path
			return nil, le
		}
		return nil, &Error{Path: path, Err: err}
	}
	return s, nil
}

// Decode unmarshals and resolves an IR document.
func Decode(data []byte, f Format) (*schema.Schema, error) {
	doc, err := Unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	return Resolve(doc)
}

// Unmarshal decodes an IR document without resolving it.
func Unmarshal(data []byte, f Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		err = dec.Decode(doc)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("decode %s: %w", f, err)}
	}
	return doc, nil
}

// Marshal encodes an IR document. It is the inverse of Unmarshal and is
// used to convert documents between formats.
func Marshal(doc *Document, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		enc.SetOmitEmpty(true)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}
