package chart

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalDataset serializes a Dataset to pretty-printed JSON bytes.
func MarshalDataset(d Dataset) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDataset deserializes JSON bytes into a Dataset.
func UnmarshalDataset(data []byte) (Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("unmarshal dataset: %w", err)
	}
	return d, nil
}

// WriteDatasetFile writes a Dataset to a JSON file.
func WriteDatasetFile(d Dataset, path string) error {
	data, err := MarshalDataset(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDatasetFile reads a Dataset from a JSON file.
func ReadDatasetFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDataset(data)
}
