// Package report serializes metadata records to the JSON report file.
package report

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	vmerrors "github.com/five82/vidmeta/internal/errors"
	"github.com/five82/vidmeta/internal/metadata"
)

const indent = "    "

// Encode writes records to w as an indented JSON array. Non-ASCII and HTML
// characters are written as-is. A nil slice encodes as [].
func Encode(w io.Writer, records []metadata.Record) error {
	if records == nil {
		records = []metadata.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	return enc.Encode(records)
}

// Marshal returns the encoded report.
func Marshal(records []metadata.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write replaces the file at path with the encoded report. The file is only
// touched once encoding has succeeded.
func Write(path string, records []metadata.Record) error {
	data, err := Marshal(records)
	if err != nil {
		return vmerrors.NewWriteError(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return vmerrors.NewWriteError(path, err)
	}
	return nil
}

// WriteTo encodes the report to w, naming it path in any error.
func WriteTo(w io.Writer, path string, records []metadata.Record) error {
	data, err := Marshal(records)
	if err != nil {
		return vmerrors.NewWriteError(path, err)
	}
	if _, err := w.Write(data); err != nil {
		return vmerrors.NewWriteError(path, err)
	}
	return nil
}
