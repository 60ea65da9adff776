package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/riskibarqy/squad-builder/internal/usecase"
)

// maxBackupBytes bounds an imported snapshot.
const maxBackupBytes = 32 << 20

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExportBackup streams the whole collection as a downloadable JSON file.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportBackup")
	defer span.End()

	raw, err := h.backupService.Export(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export backup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="squad-builder-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportBackup")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes+1))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read backup payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(raw) > maxBackupBytes {
		writeError(ctx, w, fmt.Errorf("%w: backup payload exceeds %d bytes", usecase.ErrInvalidInput, maxBackupBytes))
		return
	}

	result, err := h.backupService.Import(ctx, raw)
	if err != nil {
		h.logger.WarnContext(ctx, "import backup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultDTO{
		Players:     result.Players,
		Formations:  result.Formations,
		IdealBuilds: result.IdealBuilds,
	})
}
