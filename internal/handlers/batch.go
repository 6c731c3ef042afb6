package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/bobmcallan/statement-report/internal/batch"
	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/interfaces"
)

// archiveName is the download name of a batch archive.
const archiveName = "statement-reports.zip"

// BatchHandler compiles many uploaded documents into one archive.
type BatchHandler struct {
	processor interfaces.BatchProcessor
	maxBytes  int64
	logger    *common.Logger
}

// NewBatchHandler creates a batch handler accepting uploads of up to
// maxBytes in total.
func NewBatchHandler(processor interfaces.BatchProcessor, maxBytes int64, logger *common.Logger) *BatchHandler {
	return &BatchHandler{processor: processor, maxBytes: maxBytes, logger: logger}
}

// ServeHTTP handles POST /api/reports/batch. The multipart "files" parts are
// compiled independently; failures are listed in the manifest rather than
// failing the request. ?format=json responds with the manifest only.
func (h *BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	logger := h.logger.ForRequest(r.Context())

	uploads, err := readUploads(w, r, h.maxBytes, "files")
	if err != nil {
		status := uploadStatus(err)
		logger.Warn().Int("status", status).Str("error", err.Error()).Msg("rejected batch upload")
		WriteError(w, status, err.Error())
		return
	}

	inputs := make([]batch.Input, len(uploads))
	for i, up := range uploads {
		inputs[i] = batch.Input{Name: up.Name, Data: up.Data}
	}
	res := h.processor.Process(r.Context(), inputs)

	w.Header().Set("X-Batch-Reports", strconv.Itoa(len(res.Outputs)))
	w.Header().Set("X-Batch-Failures", strconv.Itoa(len(res.Failures)))

	if r.URL.Query().Get("format") == "json" {
		WriteJSON(w, http.StatusOK, res.Manifest())
		return
	}

	var buf bytes.Buffer
	if err := batch.WriteArchive(&buf, res); err != nil {
		logger.Error().Str("error", err.Error()).Msg("batch archive failed")
		WriteError(w, http.StatusInternalServerError, "batch archive failed")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	attachment(w, archiveName)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
