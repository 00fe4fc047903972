package response

import (
	"errors"
	"net/http"

	"github.com/crewledger/crewledger-backend-go/internal/domain/auth"
	"github.com/crewledger/crewledger-backend-go/internal/domain/dailylog"
	"github.com/crewledger/crewledger-backend-go/internal/domain/employee"
	"github.com/crewledger/crewledger-backend-go/internal/domain/payslip"
	"github.com/crewledger/crewledger-backend-go/internal/domain/piecerate"
	"github.com/crewledger/crewledger-backend-go/internal/domain/user"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/googledrive"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/validator"
	"github.com/crewledger/crewledger-backend-go/internal/service/backup"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Rate catalog errors
	case errors.Is(err, piecerate.ErrPieceRateNotFound):
		NotFound(w, "Piece rate not found")

	// Daily log errors
	case errors.Is(err, dailylog.ErrLogNotFound):
		NotFound(w, "Daily log not found")

	// Payslip errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrBulkGenerateDisabled):
		Forbidden(w, "Bulk payslip generation is currently disabled")

	// Backup errors
	case errors.Is(err, backup.ErrInvalidSnapshot):
		BadRequest(w, "Invalid backup snapshot", nil)
	case errors.Is(err, backup.ErrDriveNotConnected):
		BadRequest(w, "Google Drive is not connected", nil)
	case errors.Is(err, googledrive.ErrNoBackup):
		NotFound(w, "No backup file found in Google Drive")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
