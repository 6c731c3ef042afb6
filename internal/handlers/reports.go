package handlers

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/interfaces"
	"github.com/bobmcallan/statement-report/internal/report"
	"github.com/bobmcallan/statement-report/internal/workbook"
)

// ReportHandler compiles uploaded documents into downloadable reports.
type ReportHandler struct {
	generator interfaces.ReportGenerator
	maxBytes  int64
	logger    *common.Logger
}

// NewReportHandler creates a report handler accepting documents of up to
// maxBytes.
func NewReportHandler(generator interfaces.ReportGenerator, maxBytes int64, logger *common.Logger) *ReportHandler {
	return &ReportHandler{generator: generator, maxBytes: maxBytes, logger: logger}
}

// ServeHTTP handles POST /api/reports and responds with the HTML report.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	res, ok := h.generate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Schema-Version", res.Metadata.SchemaVersion)
	attachment(w, res.BaseName+".html")
	w.WriteHeader(http.StatusOK)
	w.Write(res.HTML)
}

// HandleWorkbook handles POST /api/reports/workbook and responds with the
// XLSX export of the report.
func (h *ReportHandler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	res, ok := h.generate(w, r)
	if !ok {
		return
	}

	data, err := workbook.Bytes(res.Report)
	if err != nil {
		h.logger.ForRequest(r.Context()).Error().
			Str("document", res.Name).
			Str("error", err.Error()).
			Msg("workbook export failed")
		WriteError(w, http.StatusInternalServerError, "workbook export failed")
		return
	}

	w.Header().Set("Content-Type", workbook.ContentType)
	w.Header().Set("X-Schema-Version", res.Metadata.SchemaVersion)
	attachment(w, res.BaseName+".xlsx")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// generate reads and compiles the uploaded document, writing the error
// response itself when that fails.
func (h *ReportHandler) generate(w http.ResponseWriter, r *http.Request) (*report.Result, bool) {
	logger := h.logger.ForRequest(r.Context())

	up, err := readUpload(w, r, h.maxBytes)
	if err != nil {
		status := uploadStatus(err)
		logger.Warn().Int("status", status).Str("error", err.Error()).Msg("rejected upload")
		WriteError(w, status, err.Error())
		return nil, false
	}

	res, err := h.generator.Generate(up.Name, up.Data)
	if err != nil {
		if errors.Is(err, document.ErrMalformedInput) {
			logger.Warn().Str("document", up.Name).Str("error", err.Error()).Msg("malformed document")
			WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, false
		}
		logger.Error().Str("document", up.Name).Str("error", err.Error()).Msg("report generation failed")
		WriteError(w, http.StatusInternalServerError, "report generation failed")
		return nil, false
	}

	logger.Info().
		Str("document", up.Name).
		Str("base_name", res.BaseName).
		Str("schema_version", res.Metadata.SchemaVersion).
		Int("bytes", len(res.HTML)).
		Msg("report generated")
	return res, true
}
