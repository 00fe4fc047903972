package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/crewledger/crewledger-backend-go/internal/config"
	appHTTP "github.com/crewledger/crewledger-backend-go/internal/handler/http"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/cron"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/database"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/featureflag"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/googledrive"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/jwt"
	"github.com/crewledger/crewledger-backend-go/internal/pkg/storage"
	"github.com/crewledger/crewledger-backend-go/internal/repository/postgresql"
	authService "github.com/crewledger/crewledger-backend-go/internal/service/auth"
	backupService "github.com/crewledger/crewledger-backend-go/internal/service/backup"
	dailylogService "github.com/crewledger/crewledger-backend-go/internal/service/dailylog"
	employeeService "github.com/crewledger/crewledger-backend-go/internal/service/employee"
	exportService "github.com/crewledger/crewledger-backend-go/internal/service/export"
	payslipService "github.com/crewledger/crewledger-backend-go/internal/service/payslip"
	piecerateService "github.com/crewledger/crewledger-backend-go/internal/service/piecerate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	pieceRateRepo := postgresql.NewPieceRateRepository(db)
	dailyLogRepo := postgresql.NewDailyLogRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	flags := featureflag.NewService(cfg.RemoteConfig.URL)
	driveService := googledrive.NewDriveService(
		cfg.GoogleDrive.ClientID,
		cfg.GoogleDrive.ClientSecret,
		cfg.GoogleDrive.RedirectURL,
	)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileStorage)
	pieceRateSvc := piecerateService.NewPieceRateService(pieceRateRepo)
	dailyLogSvc := dailylogService.NewDailyLogService(dailyLogRepo, pieceRateRepo)
	payslipSvc := payslipService.NewPayslipService(payslipRepo, employeeRepo, dailyLogRepo, flags)
	exportSvc := exportService.NewExportService(payslipRepo)
	backupSvc := backupService.NewBackupService(
		employeeRepo,
		pieceRateRepo,
		dailyLogRepo,
		payslipRepo,
		transactor,
		driveService,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("remote-config-refresh", cfg.RemoteConfig.RefreshInterval, flags.Refresh)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, appHTTP.RouterDeps{
		JWTService:       jwtService,
		Flags:            flags,
		AuthHandler:      appHTTP.NewAuthHandler(authSvc, jwtService),
		EmployeeHandler:  appHTTP.NewEmployeeHandler(employeeSvc),
		PieceRateHandler: appHTTP.NewPieceRateHandler(pieceRateSvc),
		DailyLogHandler:  appHTTP.NewDailyLogHandler(dailyLogSvc),
		PayslipHandler:   appHTTP.NewPayslipHandler(payslipSvc, exportSvc),
		BackupHandler:    appHTTP.NewBackupHandler(backupSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
