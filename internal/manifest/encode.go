package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DescriptorFile is the file name the build command writes into the dist
// directory for the external packaging tool.
const DescriptorFile = "stetho-pkg.json"

// EncodeJSON returns the descriptor as indented JSON with a trailing newline.
func (d Descriptor) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML returns the descriptor as YAML.
func (d Descriptor) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return data, nil
}

// Write persists the JSON form under distDir, creating the directory if
// needed, and returns the descriptor path.
func (d Descriptor) Write(distDir string) (string, error) {
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return "", fmt.Errorf("creating dist dir %s: %w", distDir, err)
	}
	data, err := d.EncodeJSON()
	if err != nil {
		return "", err
	}
	path := filepath.Join(distDir, DescriptorFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
