package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tdhoang/centavo/internal/db"
	"github.com/tdhoang/centavo/internal/handlers"
	"github.com/tdhoang/centavo/internal/logger"
	"github.com/tdhoang/centavo/internal/repositories"
	"github.com/tdhoang/centavo/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database connection
	config := db.NewConfig()
	database, err := db.Connect(config)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database connection established")

	// Repositories
	operations := repositories.NewOperationsRepository(database)
	currencies := repositories.NewCurrencyRepository(database)
	rates := repositories.NewRateRepository(database)
	lookup := repositories.NewLookupRepository(database)

	// Rate source: stored rates, optionally backed by a live FX API.
	var rateSource services.RateSource = rates
	if os.Getenv("FX_API_ENABLED") == "true" {
		rateSource = services.NewHTTPRateSource(os.Getenv("FX_API_KEY"), rates, log)
	}

	// Services
	labels := services.DefaultLabels()
	budgetCharts := services.NewBudgetChartService(operations, currencies, rateSource, labels, log)
	categoryCharts := services.NewCategoryChartService(operations, currencies, rateSource, labels, log)
	tagCharts := services.NewTagChartService(operations, currencies, rateSource, labels, log)
	transactionCharts := services.NewTransactionChartService(operations, currencies, rateSource, labels, log)
	categoryReport := services.NewCategoryReportGenerator(operations, currencies, rateSource, labels, log)

	// Handlers
	chartHandler := handlers.NewChartHandler(budgetCharts, categoryCharts, tagCharts, transactionCharts, lookup)
	reportHandler := handlers.NewReportHandler(categoryReport, operations)

	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "centavo",
		})
	}).Methods("GET")

	// Chart endpoints
	router.HandleFunc("/api/charts/budget/{id:[0-9]+}/main", chartHandler.HandleBudgetMainChart).Methods("GET")
	router.HandleFunc("/api/charts/budget/{group}-expense", chartHandler.HandleBudgetPie).Methods("GET")
	router.HandleFunc("/api/charts/category/{id:[0-9]+}/main", chartHandler.HandleCategoryMainChart).Methods("GET")
	router.HandleFunc("/api/charts/category/{group}-{direction}", chartHandler.HandleCategoryPie).Methods("GET")
	router.HandleFunc("/api/charts/tag/{id:[0-9]+}/main", chartHandler.HandleTagMainChart).Methods("GET")
	router.HandleFunc("/api/charts/tag/{group}-{direction}", chartHandler.HandleTagPie).Methods("GET")
	router.HandleFunc("/api/charts/transactions/budgets", chartHandler.HandleTransactionBudgets).Methods("GET")
	router.HandleFunc("/api/charts/transactions/{type}/{group}", chartHandler.HandleTransactionPie).Methods("GET")

	// Report endpoints
	router.HandleFunc("/api/reports/category", reportHandler.HandleCategoryReport).Methods("GET")
	router.HandleFunc("/api/operations/{listing}", reportHandler.HandleOperations).Methods("GET")

	// CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
