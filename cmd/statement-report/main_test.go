package main

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/statement-report/internal/batch"
)

const acme = `{"report_info":{"company_name":"Acme","period_end":"2024-06-30","schema_version":"5.0"}}`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func quietEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("STATEMENT_LOG_LEVEL", "error")
	t.Setenv("STATEMENT_REPORT_INCLUDE_JSON", "false")
}

func TestRun_WritesReports(t *testing.T) {
	quietEnv(t)
	in := t.TempDir()
	out := t.TempDir()
	doc := writeInput(t, in, "acme.json", acme)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", out, doc}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	html, err := os.ReadFile(filepath.Join(out, "Acme_2024-06-30_schema_5.0.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Acme")
	assert.NoFileExists(t, filepath.Join(out, "Acme_2024-06-30_schema_5.0.json"))
	assert.Contains(t, stdout.String(), "1 report(s) generated, 0 failed")
}

func TestRun_OptionalArtifacts(t *testing.T) {
	quietEnv(t)
	in := t.TempDir()
	out := t.TempDir()
	doc := writeInput(t, in, "acme.json", acme)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", out, "-json", "-xlsx", doc}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.FileExists(t, filepath.Join(out, "Acme_2024-06-30_schema_5.0.json"))
	assert.FileExists(t, filepath.Join(out, "Acme_2024-06-30_schema_5.0.xlsx"))
}

func TestRun_FailuresExitNonZero(t *testing.T) {
	quietEnv(t)
	in := t.TempDir()
	out := t.TempDir()
	writeInput(t, in, "a.json", acme)
	writeInput(t, in, "b.json", `{"report_info":`)
	writeInput(t, in, "notes.txt", "ignored")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", out, in}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "b.json")
	assert.FileExists(t, filepath.Join(out, "Acme_2024-06-30_schema_5.0.html"))
	assert.Contains(t, stdout.String(), "1 report(s) generated, 1 failed")
}

func TestRun_ZipArchive(t *testing.T) {
	quietEnv(t)
	in := t.TempDir()
	doc := writeInput(t, in, "acme.json", acme)
	archive := filepath.Join(t.TempDir(), "reports.zip")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-zip", archive, doc}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Acme_2024-06-30_schema_5.0.html", batch.ManifestName}, names)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage:")
}

func TestRun_MissingInput(t *testing.T) {
	quietEnv(t)
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{filepath.Join(t.TempDir(), "absent.json")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "absent.json")
}
