package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/raushankrgupta/bundle-strategist/api"
	"github.com/raushankrgupta/bundle-strategist/assistant"
	"github.com/raushankrgupta/bundle-strategist/bundles"
	"github.com/raushankrgupta/bundle-strategist/config"
	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/store"
	"github.com/raushankrgupta/bundle-strategist/utils"
)

// loadSnapshotFromCSV builds a snapshot from the CSV exports in dataDir.
// Seasonality and discount stats are recomputed from the order history so
// stale inventory columns don't leak into the recommendations.
func loadSnapshotFromCSV(dataDir string) (*store.Snapshot, error) {
	products, err := store.LoadInventoryCSV(filepath.Join(dataDir, "custom_inventory.csv"))
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	orders, err := store.LoadOrdersCSV(filepath.Join(dataDir, "custom_orders.csv"))
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	pairs, err := store.LoadCoPurchaseCSV(filepath.Join(dataDir, "bought_together.csv"))
	if err != nil {
		// Co-purchase counts can be derived from the orders instead.
		log.Printf("No co-purchase file, deriving counts from orders: %v", err)
		pairs = nil
	}

	products = store.EnrichSeasonality(products, orders)
	products = store.EnrichDiscountStats(products, orders)
	return store.NewSnapshot(products, orders, pairs)
}

func main() {
	config.LoadConfig()
	ctx := context.Background()

	var snapshot *store.Snapshot
	var mongoStore *store.MongoStore
	var err error

	if config.DataDir != "" {
		snapshot, err = loadSnapshotFromCSV(config.DataDir)
		if err != nil {
			log.Fatalf("Failed to load CSV data: %v", err)
		}
	} else {
		mongoStore, err = store.ConnectMongo(config.MongoURI, config.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoStore.Close(ctx)
		snapshot, err = mongoStore.LoadSnapshot(ctx)
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
	}
	fmt.Printf("Loaded %d products, %d order lines\n", len(snapshot.Products()), len(snapshot.Orders()))

	if config.AWSBucketName != "" {
		if err := utils.InitS3(); err != nil {
			log.Printf("S3 disabled: %v", err)
		}
	}

	var classifier profile.Classifier
	if config.GeminiAPIKey != "" {
		classifier = profile.NewGeminiClassifier(config.GeminiAPIKey, config.GeminiModel)
	}
	profiles := profile.NewBuilder(snapshot, classifier)

	evaluator := bundles.NewEvaluator(snapshot, config.ConversionRate, config.DesiredMargin)
	bundleService := bundles.NewService(bundles.Deps{
		Snapshot: snapshot,
		Profiles: profiles,
		TopN:     config.PriorityTopN,
	}, evaluator)

	var parser assistant.Parser
	if config.GeminiAPIKey != "" {
		parser = assistant.NewGeminiParser(config.GeminiAPIKey, config.GeminiModel)
	}

	server := api.NewServer(bundleService, profiles, parser, snapshot, mongoStore)

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	handle := func(pattern string, h http.HandlerFunc) {
		http.Handle(pattern, utils.LatencyMiddleware(http.HandlerFunc(corsMiddleware(h))))
	}

	handle("/bundles", server.GetBundlesHandler)
	handle("/bundles/all", server.GetAllBundlesHandler)
	handle("/profile", server.ProfileHandler)
	handle("/chat", server.ChatHandler)
	// Report generation is authenticated when accounts are available.
	if mongoStore != nil {
		handle("/report", api.AuthMiddleware(server.ReportHandler))
	} else {
		handle("/report", server.ReportHandler)
	}

	// Merchandiser accounts need MongoDB.
	if mongoStore != nil {
		http.HandleFunc("/auth/signup", corsMiddleware(server.SignupHandler))
		http.HandleFunc("/auth/verify-otp", corsMiddleware(server.VerifyOTPHandler))
		http.HandleFunc("/auth/login", corsMiddleware(server.LoginHandler))
	}

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	fmt.Printf("Usage: curl \"http://localhost:%s/bundles?type=complementary&depth=5\"\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
