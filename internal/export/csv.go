// Package export writes matched postings to CSV files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jobscout/jobscout/internal/model"
)

// ExportFields is the CSV header row, in output order.
var ExportFields = []string{"Description", "Link", "Location", "Published At", "Full Description"}

// ExportError reports a failed CSV export. Permission is set when the
// target path could not be written due to filesystem permissions, so
// callers can suggest picking a different output path.
type ExportError struct {
	Path       string
	Permission bool
	Err        error
}

func (e *ExportError) Error() string {
	if e.Permission {
		return fmt.Sprintf("no permission to write %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("export to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// WriteCSV writes postings to path, overwriting any existing file. The
// header row is always written, even when postings is empty.
func WriteCSV(path string, postings []model.MatchedPosting) error {
	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Permission: errors.Is(err, fs.ErrPermission), Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ExportFields); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	for _, p := range postings {
		record := []string{p.Description, p.Link, p.Location, p.PublishedAt, p.FullDescription}
		if err := w.Write(record); err != nil {
			return &ExportError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ExportError{Path: path, Permission: errors.Is(err, fs.ErrPermission), Err: err}
	}
	return nil
}
