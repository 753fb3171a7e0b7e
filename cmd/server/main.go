package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/yourusername/sessiongate/api"
	"github.com/yourusername/sessiongate/metrics"
	"github.com/yourusername/sessiongate/middleware"
	core "github.com/yourusername/sessiongate/pkg/sessiongate"
	"github.com/yourusername/sessiongate/store"
)

func main() {
	// Configuration
	port := getEnv("PORT", "8080")
	redisAddr := getEnv("REDIS_ADDR", "")
	configFile := getEnv("CONFIG_FILE", "")

	config := core.NewConfig()
	if configFile != "" {
		loaded, err := core.LoadConfigFromFile(configFile)
		if err != nil {
			log.Fatal("Failed to load config:", err)
		}
		config = loaded
		fmt.Println("Loaded config from", configFile)
	}

	// Choose storage backend for the activity timestamp
	var storage store.Store
	if redisAddr != "" {
		redisStore := store.NewRedisStore(store.RedisConfig{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})

		if err := redisStore.Ping(); err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		fmt.Println("Connected to Redis at", redisAddr)
		storage = redisStore
	} else {
		fmt.Println("Using in-memory storage (activity state will not survive restarts)")
		storage = store.NewMemoryStore()
	}

	// One limiter per published policy, alive for the process's duration
	limiters, err := config.BuildLimiters()
	if err != nil {
		log.Fatal("Failed to build limiters:", err)
	}
	for name, limiter := range limiters {
		stop := limiter.StartBackgroundCleanup(limiter.Window())
		defer stop()
		fmt.Printf("Policy %q: %d requests per %v\n", name, limiter.Limit(), limiter.Window())
	}

	// Metrics tracker
	metricsTracker := metrics.NewMetrics()

	// The demo runs one authenticated session, created at startup the way a
	// host would create one at login
	timerConfig, err := config.Session.TimerConfig()
	if err != nil {
		log.Fatal("Invalid session config:", err)
	}

	sessionID := uuid.NewString()
	timer, err := core.NewSessionTimer(timerConfig,
		core.WithStorage(storage),
		core.WithStorageKey(core.DefaultStorageKey+":"+sessionID),
	)
	if err != nil {
		log.Fatal("Failed to create session timer:", err)
	}

	metricsTracker.ObserveTimer(timer)
	timer.On(core.EventWarning, func(interface{}) {
		log.Printf("session %s expiring in %s", sessionID, timer.FormattedRemaining())
	})
	timer.On(core.EventTimeout, func(interface{}) {
		log.Printf("session %s timed out", sessionID)
	})
	timer.Start()
	defer timer.Stop()
	fmt.Println("Session started:", sessionID)

	// HTTP surface
	handler := api.NewHandler(limiters, timer, metricsTracker)
	metricsHandler := api.NewMetricsHandler(metricsTracker)

	transferLimiter, ok := limiters["transfer"]
	if !ok {
		log.Fatal("config must define a \"transfer\" limit policy")
	}

	sessionGuard := middleware.NewSessionGuard(timer)
	transferGuard := middleware.NewRateLimit(middleware.RateLimitConfig{
		Limiter: transferLimiter,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/check", handler.CheckRateLimit)
	mux.HandleFunc("/v1/session", handler.SessionState)
	mux.HandleFunc("/v1/session/extend", handler.ExtendSession)
	mux.HandleFunc("/v1/session/reset", handler.ResetSession)
	mux.HandleFunc("/v1/metrics", metricsHandler.GetMetrics)

	// A money-transfer route demonstrating the full guard chain: active
	// session required, transfer policy enforced per client
	mux.Handle("/v1/transfer", sessionGuard.Middleware(
		transferGuard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `{"status":"accepted"}`)
		})),
	))

	addr := ":" + port
	fmt.Println("Listening on", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
