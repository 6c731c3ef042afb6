package handlers

import (
	"net/http"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/config"
)

// VersionHandler serves build information.
type VersionHandler struct {
	logger *common.Logger
}

func NewVersionHandler(logger *common.Logger) *VersionHandler {
	return &VersionHandler{logger: logger}
}

type versionResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Build     string `json:"build"`
	GitCommit string `json:"git_commit"`
}

// ServeHTTP handles GET /api/version.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, versionResponse{
		Service:   "statement-report",
		Version:   config.GetVersion(),
		Build:     config.GetBuild(),
		GitCommit: config.GetGitCommit(),
	})
}
