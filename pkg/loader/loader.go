// Package loader reads structured documents from files or raw bytes,
// auto-detecting the input format. JSON input keeps its member order;
// YAML and TOML are converted with keys sorted.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jed/internal/jsontree"
)

// Format identifies the detected input format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Load parses input, auto-detecting the format, and returns the document
// tree together with the format it was decoded from.
func Load(input string) (jsontree.Value, Format, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, "", fmt.Errorf("empty input")
	}

	// TOML before JSON: a [section] header looks like a JSON array prefix.
	if isLikelyTOML(trimmed) {
		v, err := loadTOML(trimmed)
		return v, FormatTOML, err
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		v, err := loadJSON(input)
		return v, FormatJSON, err
	}

	// JSON scalars are also valid YAML, so the YAML fallback covers them.
	v, err := loadYAML(input)
	return v, FormatYAML, err
}

// LoadFile reads a file and parses it. A recognized extension picks the
// format directly; anything else goes through content detection.
func LoadFile(path string) (jsontree.Value, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	input := string(data)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v, err := loadJSON(input)
		return v, FormatJSON, err
	case ".yaml", ".yml":
		v, err := loadYAML(input)
		return v, FormatYAML, err
	case ".toml":
		v, err := loadTOML(input)
		return v, FormatTOML, err
	}
	return Load(input)
}

func loadJSON(input string) (jsontree.Value, error) {
	v, err := jsontree.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

func loadYAML(input string) (jsontree.Value, error) {
	var data interface{}
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return jsontree.FromInterface(data), nil
}

func loadTOML(input string) (jsontree.Value, error) {
	var data interface{}
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return jsontree.FromInterface(data), nil
}

// Pattern for TOML section headers: [section] or [[array]], with bare,
// quoted, or dotted keys. JSON arrays like [1, 2, 3] do not match.
var tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)

// Pattern for TOML key = value lines (not key: value, which is YAML).
var tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)

// isLikelyTOML heuristic: any section header, or a majority of non-comment
// lines in key = value form.
func isLikelyTOML(input string) bool {
	keyValueCount := 0
	nonEmptyCount := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if tomlSectionPattern.MatchString(line) {
			return true
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}

	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
