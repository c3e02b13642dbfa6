package exports

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"csv-to-json/common"
)

// PrettyIndent is the indentation used by pretty output
const PrettyIndent = "    "

// Encode renders v as compact JSON, or indented by PrettyIndent when pretty
// is set. HTML characters are not escaped and no trailing newline is added.
func Encode(v json.Marshaler, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", PrettyIndent)
	}

	if err := enc.Encode(v); err != nil {
		return nil, common.NewError(common.KindAggregation, "", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteFile writes data to path, creating missing parent directories and
// replacing any existing file. The write is not atomic.
func WriteFile(path string, data []byte) error {
	if _, err := os.Stat(path); err != nil {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return common.NewError(common.KindDirectoryCreate, path, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return common.NewError(common.KindWrite, path, err)
	}
	return nil
}

// DefaultOutput returns the file name of input with its extension replaced
// by .json, relative to the current directory.
func DefaultOutput(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	if ext == base {
		// ".csv" is a name without an extension
		ext = ""
	}
	return strings.TrimSuffix(base, ext) + ".json"
}
