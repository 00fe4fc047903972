package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/crewledger/crewledger-backend-go/internal/handler/http/response"
	"github.com/crewledger/crewledger-backend-go/internal/service/export"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	BulkGenerate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DownloadPDF(w http.ResponseWriter, r *http.Request)
	DownloadHistoryXLSX(w http.ResponseWriter, r *http.Request)
}

type PayslipHandlerImpl struct {
	payslipService payslip.PayslipService
	exportService  export.ExportService
}

func NewPayslipHandler(payslipService payslip.PayslipService, exportService export.ExportService) PayslipHandler {
	return &PayslipHandlerImpl{
		payslipService: payslipService,
		exportService:  exportService,
	}
}

func (h *PayslipHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq payslip.GeneratePayslipRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("GeneratePayslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slip, err := h.payslipService.Generate(r.Context(), generateReq)
	if err != nil {
		slog.Error("GeneratePayslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if generateReq.Save {
		response.Created(w, "Payslip generated and saved", slip)
		return
	}
	response.Success(w, slip)
}

func (h *PayslipHandlerImpl) BulkGenerate(w http.ResponseWriter, r *http.Request) {
	var bulkReq payslip.BulkGenerateRequest

	if err := json.NewDecoder(r.Body).Decode(&bulkReq); err != nil {
		slog.Error("BulkGeneratePayslips decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payslipService.BulkGenerate(r.Context(), bulkReq)
	if err != nil {
		slog.Error("BulkGeneratePayslips service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk generation completed", result)
}

func (h *PayslipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payslipService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

func (h *PayslipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	slips, err := h.payslipService.List(r.Context())
	if err != nil {
		slog.Error("ListPayslips service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, slips)
}

func (h *PayslipHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payslipService.Delete(r.Context(), id); err != nil {
		slog.Error("DeletePayslip service error", "error", err, "payslip_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip deleted successfully", nil)
}

func (h *PayslipHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, filename, err := h.exportService.PayslipPDF(r.Context(), id)
	if err != nil {
		slog.Error("DownloadPayslipPDF error", "error", err, "payslip_id", id)
		response.HandleError(w, err)
		return
	}

	response.File(w, data, filename, "application/pdf")
}

func (h *PayslipHandlerImpl) DownloadHistoryXLSX(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.exportService.HistoryXLSX(r.Context())
	if err != nil {
		slog.Error("DownloadHistoryXLSX error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}
