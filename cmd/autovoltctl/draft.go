package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urmzd/autovolt/pkg/device"
	"gopkg.in/yaml.v3"
)

// loadDraft reads a device draft from a YAML or JSON file, or stdin for "-".
// Field names are the API's JSON names in both formats.
func loadDraft(path string) (device.Draft, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return device.Draft{}, fmt.Errorf("failed to read draft: %w", err)
	}
	return parseDraft(data, strings.ToLower(filepath.Ext(path)))
}

func parseDraft(data []byte, ext string) (device.Draft, error) {
	var d device.Draft

	if ext == ".json" {
		if err := json.Unmarshal(data, &d); err != nil {
			return device.Draft{}, fmt.Errorf("failed to parse draft: %w", err)
		}
		return d, nil
	}

	// YAML is a superset of JSON, so anything else goes through YAML and
	// then onto the JSON tags of the draft.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return device.Draft{}, fmt.Errorf("failed to parse draft: %w", err)
	}
	if doc == nil {
		return device.Draft{}, fmt.Errorf("failed to parse draft: empty document")
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return device.Draft{}, fmt.Errorf("failed to parse draft: %w", err)
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return device.Draft{}, fmt.Errorf("failed to parse draft: %w", err)
	}
	return d, nil
}
