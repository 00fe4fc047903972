package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/crewledger/crewledger-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PieceRateHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PieceRateHandlerImpl struct {
	rateService piecerate.PieceRateService
}

func NewPieceRateHandler(rateService piecerate.PieceRateService) PieceRateHandler {
	return &PieceRateHandlerImpl{rateService: rateService}
}

func (h *PieceRateHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq piecerate.CreatePieceRateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreatePieceRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rate, err := h.rateService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreatePieceRate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Piece rate created successfully", rate)
}

func (h *PieceRateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rateService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rate)
}

func (h *PieceRateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rateService.List(r.Context())
	if err != nil {
		slog.Error("ListPieceRates service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}

func (h *PieceRateHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq piecerate.UpdatePieceRateRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdatePieceRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	rate, err := h.rateService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdatePieceRate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Piece rate updated successfully", rate)
}

func (h *PieceRateHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rateService.Delete(r.Context(), id); err != nil {
		slog.Error("DeletePieceRate service error", "error", err, "piece_rate_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Piece rate deleted successfully", nil)
}
