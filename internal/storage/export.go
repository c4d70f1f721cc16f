package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cellgrid/internal/experiment"
)

type ExportData struct {
	Input string `json:"input"`
	experiment.Summary
	Final string `json:"final"`
}

// ExportJSON writes the run as indented JSON to w.
func ExportJSON(w io.Writer, input string, summary *experiment.Summary, final string) error {
	data := ExportData{
		Input:   input,
		Summary: *summary,
		Final:   final,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path, input string, summary *experiment.Summary, final string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, input, summary, final)
}
