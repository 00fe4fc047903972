package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/crewledger/crewledger-backend-go/internal/config"
	"github.com/crewledger/crewledger-backend-go/internal/handler/http/middleware"
	"github.com/crewledger/crewledger-backend-go/internal/handler/http/response"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/featureflag"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterDeps struct {
	JWTService jwt.Service
	Flags      *featureflag.Service

	AuthHandler      AuthHandler
	EmployeeHandler  EmployeeHandler
	PieceRateHandler PieceRateHandler
	DailyLogHandler  DailyLogHandler
	PayslipHandler   PayslipHandler
	BackupHandler    BackupHandler
}

func NewRouter(cfg *config.Config, deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crewledger"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Stored avatars
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Get("/config", func(w http.ResponseWriter, req *http.Request) {
				response.Success(w, deps.Flags.Config())
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", deps.EmployeeHandler.List)
				r.Post("/", deps.EmployeeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.EmployeeHandler.Get)
					r.Put("/", deps.EmployeeHandler.Update)
					r.Delete("/", deps.EmployeeHandler.Delete)
					r.Post("/avatar", deps.EmployeeHandler.UploadAvatar)
				})
			})

			r.Route("/piece-rates", func(r chi.Router) {
				r.Get("/", deps.PieceRateHandler.List)
				r.Post("/", deps.PieceRateHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.PieceRateHandler.Get)
					r.Put("/", deps.PieceRateHandler.Update)
					r.Delete("/", deps.PieceRateHandler.Delete)
				})
			})

			r.Route("/daily-logs", func(r chi.Router) {
				r.Get("/", deps.DailyLogHandler.List)
				r.Post("/", deps.DailyLogHandler.Save)
				r.Get("/date/{date}", deps.DailyLogHandler.GetByDate)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.DailyLogHandler.Get)
					r.Delete("/", deps.DailyLogHandler.Delete)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/", deps.PayslipHandler.List)
				r.Post("/generate", deps.PayslipHandler.Generate)
				r.Post("/bulk-generate", deps.PayslipHandler.BulkGenerate)
				r.Get("/export", deps.PayslipHandler.DownloadHistoryXLSX)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.PayslipHandler.Get)
					r.Delete("/", deps.PayslipHandler.Delete)
					r.Get("/pdf", deps.PayslipHandler.DownloadPDF)
				})
			})

			r.Route("/backup", func(r chi.Router) {
				r.Get("/export", deps.BackupHandler.Export)
				r.Post("/import", deps.BackupHandler.Import)
				r.Route("/drive", func(r chi.Router) {
					r.Get("/auth-url", deps.BackupHandler.DriveAuthURL)
					r.Get("/callback", deps.BackupHandler.DriveCallback)
					r.Get("/status", deps.BackupHandler.DriveStatus)
					r.Post("/backup", deps.BackupHandler.DriveBackup)
					r.Post("/restore", deps.BackupHandler.DriveRestore)
				})
			})
		})
	})
	return r
}
