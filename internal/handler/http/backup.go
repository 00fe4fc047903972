package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/crewledger/crewledger-backend-go/internal/handler/http/response"
	"github.com/crewledger/crewledger-backend-go/internal/service/backup"
)

// maxSnapshotSize caps uploaded backup snapshots at 32 MB.
const maxSnapshotSize = 32 << 20

type BackupHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	DriveAuthURL(w http.ResponseWriter, r *http.Request)
	DriveCallback(w http.ResponseWriter, r *http.Request)
	DriveStatus(w http.ResponseWriter, r *http.Request)
	DriveBackup(w http.ResponseWriter, r *http.Request)
	DriveRestore(w http.ResponseWriter, r *http.Request)
}

type BackupHandlerImpl struct {
	backupService backup.BackupService
}

func NewBackupHandler(backupService backup.BackupService) BackupHandler {
	return &BackupHandlerImpl{backupService: backupService}
}

func (h *BackupHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.backupService.Export(r.Context())
	if err != nil {
		slog.Error("ExportBackup error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, data, "crewledger_backup.json", "application/json")
}

func (h *BackupHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotSize))
	if err != nil {
		response.BadRequest(w, "Failed to read request body", nil)
		return
	}

	if err := h.backupService.Import(r.Context(), data); err != nil {
		slog.Error("ImportBackup error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup restored successfully", nil)
}

func (h *BackupHandlerImpl) DriveAuthURL(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = "crewledger"
	}

	response.Success(w, map[string]string{"auth_url": h.backupService.DriveAuthURL(state)})
}

func (h *BackupHandlerImpl) DriveCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Authorization code is required", nil)
		return
	}

	if err := h.backupService.ConnectDrive(r.Context(), code); err != nil {
		slog.Error("DriveCallback error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Google Drive connected", nil)
}

func (h *BackupHandlerImpl) DriveStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]bool{"connected": h.backupService.DriveConnected()})
}

func (h *BackupHandlerImpl) DriveBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.backupService.BackupToDrive(r.Context()); err != nil {
		slog.Error("DriveBackup error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup uploaded to Google Drive", nil)
}

func (h *BackupHandlerImpl) DriveRestore(w http.ResponseWriter, r *http.Request) {
	if err := h.backupService.RestoreFromDrive(r.Context()); err != nil {
		slog.Error("DriveRestore error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup restored from Google Drive", nil)
}
