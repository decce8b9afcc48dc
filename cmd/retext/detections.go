package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/tsawler/retext/model"
)

// loadDetections reads OCR output produced elsewhere: either a bare list of
// detections or an object with a "detections" key. Detections without a
// confidence get model.NoConfidence.
func loadDetections(path string) ([]model.Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read detections file %s: %w", path, err)
	}

	var unmarshal func([]byte, any) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("unsupported detections file format: %s (supported: .json, .yaml, .yml)", ext)
	}

	// confidence is optional, so it is decoded through a pointer
	type rawDetection struct {
		Quad       model.Quad `json:"quad" yaml:"quad"`
		Text       string     `json:"text" yaml:"text"`
		Confidence *float64   `json:"confidence" yaml:"confidence"`
	}

	var list []rawDetection
	if err := unmarshal(data, &list); err != nil {
		var wrapped struct {
			Detections []rawDetection `json:"detections" yaml:"detections"`
		}
		if err2 := unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("failed to parse detections file %s: %w", path, err)
		}
		list = wrapped.Detections
	}

	detections := make([]model.Detection, len(list))
	for i, raw := range list {
		detections[i] = model.Detection{
			Quad:       raw.Quad,
			Text:       raw.Text,
			Confidence: model.NoConfidence,
		}
		if raw.Confidence != nil {
			detections[i].Confidence = *raw.Confidence
		}
	}
	return detections, nil
}
