package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/twoloonies/loonies/internal/model"
)

const exportStamp = "20060102T150405.000Z"

// FileSink exports each submission as a JSON document, a CSV of its entries
// and an Excel workbook.
type FileSink struct {
	dir string
}

// NewFileSink returns a FileSink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// ExportPaths are the files written for one submission.
type ExportPaths struct {
	JSON string
	CSV  string
	XLSX string
}

// Paths returns where doc is exported: submission-<UTC stamp> with a .json,
// .csv and .xlsx extension.
func (s *FileSink) Paths(doc model.Submission) ExportPaths {
	base := filepath.Join(s.dir, "submission-"+doc.SubmittedAt.UTC().Format(exportStamp))
	return ExportPaths{JSON: base + ".json", CSV: base + ".csv", XLSX: base + ".xlsx"}
}

// Deliver encodes all three exports before touching the disk. If any write
// fails, the files already written for doc are removed so a retry starts clean.
func (s *FileSink) Deliver(_ context.Context, doc model.Submission) error {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}
	var csvBuf bytes.Buffer
	if err := WriteRecords(&csvBuf, doc.Entries); err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	var xlsxBuf bytes.Buffer
	if err := WriteWorkbook(&xlsxBuf, doc); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	paths := s.Paths(doc)
	exports := []struct {
		path string
		data []byte
	}{
		{paths.JSON, append(body, '\n')},
		{paths.CSV, csvBuf.Bytes()},
		{paths.XLSX, xlsxBuf.Bytes()},
	}
	for i, e := range exports {
		if err := os.WriteFile(e.path, e.data, 0o644); err != nil {
			for _, written := range exports[:i] {
				os.Remove(written.path)
			}
			return fmt.Errorf("writing %s: %w", e.path, err)
		}
	}
	return nil
}
