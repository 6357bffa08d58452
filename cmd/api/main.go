package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/config"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	appHTTP "github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/repository/remote"
	clientService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/client"
	contractService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/contract"
	dashboardService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/dashboard"
	departmentService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/employee"
	projectService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/project"
	reportService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/report"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/service/snapshot"
	taskService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/task"
	ticketService "github.com/cmlabs-hris/opsboard-backend-go/internal/service/ticket"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db     *database.DB
		source dashboard.Source
	)
	switch cfg.Source.Kind {
	case config.DataSourcePostgres:
		db, err = database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
		})
		if err != nil {
			logger.Error("Error connecting to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
		source = postgresql.NewDashboardSource(db)
	case config.DataSourceRemote:
		header := http.Header{}
		if cfg.Remote.APIKey != "" {
			header.Set("X-API-Key", cfg.Remote.APIKey)
		}
		api, err := apiclient.New(cfg.Remote.BaseURL, apiclient.Options{
			Timeout: cfg.Remote.Timeout,
			Header:  header,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("Error creating remote API client", slog.Any("error", err))
			os.Exit(1)
		}
		source = remote.NewDashboardSource(api)
	}

	store := snapshot.NewStore(source, snapshot.Options{
		TTL:          cfg.Snapshot.TTL,
		FetchTimeout: cfg.Snapshot.FetchTimeout,
		Logger:       logger,
	})

	dashboardSvc := dashboardService.NewDashboardService(store, nil, logger)
	reportSvc := reportService.NewReportService(store, nil, logger)

	handlers := appHTTP.Handlers{
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Report:    appHTTP.NewReportHandler(reportSvc),
	}

	if db != nil {
		employeeRepo := postgresql.NewEmployeeRepository(db)
		departmentRepo := postgresql.NewDepartmentRepository(db)
		contractRepo := postgresql.NewContractRepository(db)
		clientRepo := postgresql.NewClientRepository(db)
		projectRepo := postgresql.NewProjectRepository(db)
		taskRepo := postgresql.NewTaskRepository(db)
		ticketRepo := postgresql.NewTicketRepository(db)

		employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, contractRepo, departmentRepo, store, logger)
		contractSvc := contractService.NewContractService(contractRepo, employeeRepo, logger)
		departmentSvc := departmentService.NewDepartmentService(departmentRepo, employeeRepo, store, logger)
		clientSvc := clientService.NewClientService(clientRepo, store, logger)
		projectSvc := projectService.NewProjectService(projectRepo, store, nil, logger)
		taskSvc := taskService.NewTaskService(taskRepo, store, nil, logger)
		ticketSvc := ticketService.NewTicketService(ticketRepo, store, nil, logger)

		handlers.Employee = appHTTP.NewEmployeeHandler(employeeSvc)
		handlers.Contract = appHTTP.NewContractHandler(contractSvc)
		handlers.Department = appHTTP.NewDepartmentHandler(departmentSvc)
		handlers.Client = appHTTP.NewClientHandler(clientSvc)
		handlers.Project = appHTTP.NewProjectHandler(projectSvc)
		handlers.Task = appHTTP.NewTaskHandler(taskSvc)
		handlers.Ticket = appHTTP.NewTicketHandler(ticketSvc)
	}

	scheduler := cron.NewScheduler(logger)
	if cfg.Snapshot.RefreshInterval > 0 {
		if err := cron.NewSnapshotJobs(store, cfg.Snapshot.RefreshInterval).RegisterJobs(scheduler); err != nil {
			logger.Error("Failed to register cron jobs", slog.Any("error", err))
			os.Exit(1)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", slog.String("addr", server.Addr), slog.String("data_source", cfg.Source.Kind))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.Any("error", err))
	}
}
