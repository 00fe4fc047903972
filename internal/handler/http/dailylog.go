package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DailyLogHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DailyLogHandlerImpl struct {
	logService dailylog.DailyLogService
}

func NewDailyLogHandler(logService dailylog.DailyLogService) DailyLogHandler {
	return &DailyLogHandlerImpl{logService: logService}
}

func (h *DailyLogHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var saveReq dailylog.SaveLogRequest

	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		slog.Error("SaveDailyLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	log, err := h.logService.Save(r.Context(), saveReq)
	if err != nil {
		slog.Error("SaveDailyLog service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily log saved successfully", log)
}

func (h *DailyLogHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	log, err := h.logService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, log)
}

func (h *DailyLogHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	log, err := h.logService.GetByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, log)
}

func (h *DailyLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var period *string
	if p := r.URL.Query().Get("period"); p != "" {
		period = &p
	}

	logs, err := h.logService.List(r.Context(), period)
	if err != nil {
		slog.Error("ListDailyLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

func (h *DailyLogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.logService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteDailyLog service error", "error", err, "log_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily log deleted successfully", nil)
}
