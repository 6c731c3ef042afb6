package batch

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bobmcallan/statement-report/internal/config"
	"github.com/bobmcallan/statement-report/internal/report"
)

// ManifestName is the archive entry listing the batch contents.
const ManifestName = "manifest.json"

// Manifest describes a batch archive.
type Manifest struct {
	Generator string           `json:"generator"`
	Reports   []ManifestReport `json:"reports"`
	Failures  []ManifestFail   `json:"failures"`
}

// ManifestReport lists the files written for one document.
type ManifestReport struct {
	Source   string          `json:"source"`
	BaseName string          `json:"base_name"`
	Files    []string        `json:"files"`
	Metadata report.Metadata `json:"metadata"`
}

// ManifestFail names an input that produced no report.
type ManifestFail struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Manifest builds the manifest of r.
func (r *Result) Manifest() Manifest {
	m := Manifest{
		Generator: "statement-report " + config.GetVersion(),
		Reports:   make([]ManifestReport, 0, len(r.Outputs)),
		Failures:  make([]ManifestFail, 0, len(r.Failures)),
	}
	for _, o := range r.Outputs {
		m.Reports = append(m.Reports, ManifestReport{
			Source:   o.Name,
			BaseName: o.BaseName,
			Files:    o.files(),
			Metadata: o.Metadata,
		})
	}
	for _, f := range r.Failures {
		m.Failures = append(m.Failures, ManifestFail{Source: f.Name, Error: f.Err.Error()})
	}
	return m
}

func (o Output) files() []string {
	files := []string{o.BaseName + ".html"}
	if o.JSON != nil {
		files = append(files, o.BaseName+".json")
	}
	if o.Workbook != nil {
		files = append(files, o.BaseName+".xlsx")
	}
	return files
}

// WriteArchive writes r as a ZIP archive: per report the HTML document and,
// when generated, its JSON and XLSX files, followed by the manifest.
// Entries carry no timestamps, so equal results give equal archives.
func WriteArchive(w io.Writer, r *Result) error {
	zw := zip.NewWriter(w)

	for _, o := range r.Outputs {
		if err := writeEntry(zw, o.BaseName+".html", o.HTML); err != nil {
			return err
		}
		if o.JSON != nil {
			if err := writeEntry(zw, o.BaseName+".json", o.JSON); err != nil {
				return err
			}
		}
		if o.Workbook != nil {
			if err := writeEntry(zw, o.BaseName+".xlsx", o.Workbook); err != nil {
				return err
			}
		}
	}

	manifest, err := json.MarshalIndent(r.Manifest(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeEntry(zw, ManifestName, append(manifest, '\n')); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write archive entry %s: %w", name, err)
	}
	return nil
}
