// Package emit turns a parsed talk into its on-disk document.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/Zuo-Peng/linetalk/internal/talk"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatTOML, nil
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want toml, yaml or json)", s)
	}
}

// Ext is the file extension written for the format.
func (f Format) Ext() string {
	return string(f)
}

type Document struct {
	Title   string   `toml:"title" yaml:"title" json:"title"`
	SavedAt string   `toml:"saved_at,omitempty" yaml:"saved_at,omitempty" json:"saved_at,omitempty"`
	Records []Record `toml:"records" yaml:"records" json:"records"`
}

type Record struct {
	Timestamp string `toml:"timestamp" yaml:"timestamp" json:"timestamp"`
	Author    string `toml:"author" yaml:"author" json:"author"`
	Text      string `toml:"text" yaml:"text" json:"text"`
}

// NewDocument assembles the document for a fully parsed talk.
func NewDocument(t *talk.Talk) Document {
	doc := Document{
		Title:   t.Title,
		Records: make([]Record, 0, len(t.Cards)),
	}
	if t.SavedAt != nil {
		doc.SavedAt = t.SavedAt.Format(time.RFC3339)
	}
	for _, c := range t.Cards {
		doc.Records = append(doc.Records, Record{
			Timestamp: c.Timestamp.Format(time.RFC3339),
			Author:    c.Author,
			Text:      c.Text,
		})
	}
	return doc
}

// Marshal serializes doc; the output always ends with a newline.
func Marshal(doc Document, f Format) ([]byte, error) {
	var out []byte
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		out = buf.Bytes()
	case FormatYAML:
		b, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		out = b
	case FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		out = b
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// FileName derives "<title>.<ext>". Path separators in the title are replaced.
func FileName(title string, f Format) string {
	name := unsafeName.Replace(title)
	if name == "." || name == ".." {
		name = strings.Repeat("_", len(name))
	}
	return name + "." + f.Ext()
}

// Write serializes t into dir and returns the written path. The file is
// written to a temporary name first so a failed write leaves nothing behind.
func Write(dir string, t *talk.Talk, f Format) (string, error) {
	data, err := Marshal(NewDocument(t), f)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, FileName(t.Title, f))
	tmp, err := os.CreateTemp(dir, ".linetalk-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("chmod %s: %w", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename %s: %w", dest, err)
	}
	return dest, nil
}
