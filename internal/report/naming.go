package report

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/resolve"
	"github.com/bobmcallan/statement-report/internal/schema"
)

var (
	unsafeRun     = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// Slugify reduces text to a file-name safe token. Characters outside
// [A-Za-z0-9._-] become underscores, runs of underscores collapse, and
// an empty result becomes "report".
func Slugify(text string) string {
	s := strings.ReplaceAll(strings.TrimSpace(text), " ", "_")
	s = unsafeRun.ReplaceAllString(s, "_")
	s = strings.Trim(underscoreRun.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "report"
	}
	return s
}

// BaseName names the artifacts generated from doc:
//
//	{company}_{period_end}_schema_{version}
//
// The company falls back to the input file stem and the period segment is
// dropped when the document has no period end. The version is the declared
// schema_version when present, otherwise the classified one.
func BaseName(doc document.Node, source string) string {
	info := doc.Node("report_info")

	company := resolve.FirstString(info, "", "company_name")
	if company == "" {
		company = Slugify(strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)))
	}
	version := schema.DeclaredVersion(doc)
	if version == "" {
		version = schema.Classify(doc).String()
	}

	base := Slugify(company)
	if end := resolve.FirstString(info, "", "period_end"); end != "" {
		base += "_" + Slugify(end)
	}
	return base + "_schema_" + Slugify(version)
}

// Deduplicate appends _2, _3, ... to repeated names, keeping the first
// occurrence unchanged. Generated names never collide with given ones.
func Deduplicate(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}

	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		seen[n]++
		if seen[n] == 1 {
			out[i] = n
			continue
		}
		for k := seen[n]; ; k++ {
			candidate := n + "_" + strconv.Itoa(k)
			if !taken[candidate] {
				taken[candidate] = true
				seen[n] = k
				out[i] = candidate
				break
			}
		}
	}
	return out
}
