package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sessionsheet/config"
	"sessionsheet/database"
	activityRepo "sessionsheet/database/repository/activity"
	"sessionsheet/handlers"
	"sessionsheet/middleware"
	"sessionsheet/routes"
	"sessionsheet/services/document"
	"sessionsheet/services/quota"
	"sessionsheet/services/sheet"
	"sessionsheet/utils"

	"github.com/gin-gonic/gin"
)

const builtinTemplateRef = "builtin:attendance"

func main() {
	writeTemplate := flag.String("write-template", "", "write a blank attendance template to this path and exit")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if *writeTemplate != "" {
		content, err := sheet.BlankTemplate(sheet.DefaultLayout)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to build template: %v", err)
		}
		if err := os.WriteFile(*writeTemplate, content, 0o644); err != nil {
			logger.Sugar().Fatalf("main: failed to write template: %v", err)
		}
		logger.Sugar().Infof("main: blank template written to %s", *writeTemplate)
		return
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	hasDB := database.InitDB()
	utils.InitQuotaCache()

	// The template is read once; every request parses its own copy.
	opener := sheet.NewExcelizeOpener()
	templateRef := config.AppConfig.TemplatePath
	if templateRef != "" {
		if err := opener.RegisterFile(templateRef); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	} else {
		blank, err := sheet.BlankTemplate(sheet.DefaultLayout)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to build template: %v", err)
		}
		opener.Register(builtinTemplateRef, blank)
		templateRef = builtinTemplateRef
		logger.Warn("main: TEMPLATE_PATH not set, using the built-in blank template")
	}

	// repositories.
	var activity activityRepo.ActivityLogRepository
	if hasDB {
		activity = activityRepo.NewMongoActivityRepo()
	}

	// services.
	limiter := quota.New(utils.GetQuotaCacheClient(), config.AppConfig.DailyGenerationLimit)
	documentService, err := document.NewDefaultDocumentService(opener, templateRef, activity, limiter, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	documentHandler := handlers.NewDocumentHandler(documentService, logger)

	authRequired := config.AppConfig.JWTSecret != ""
	if !authRequired {
		logger.Warn("main: JWT_SECRET not set, /api is open and every request is anonymous")
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, time.Minute, utils.GetQuotaCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	handlerBundle := &handlers.HandlerBundle{
		AuthRequired: authRequired,

		PreviewScheduleHandler:            documentHandler.PreviewHandler,
		GenerateSpreadsheetHandler:        documentHandler.GenerateHandler,
		GenerateMonthlySpreadsheetHandler: documentHandler.GenerateMonthlyHandler,
		ActivityLogsHandler:               documentHandler.ActivityLogsHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	stopMonitor()
	utils.CloseCaches()
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
