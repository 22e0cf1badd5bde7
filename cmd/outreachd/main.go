// File path: cmd/outreachd/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/outreachready/backend/internal/api"
	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/llm"
	"github.com/outreachready/backend/internal/sqlite"
	"github.com/outreachready/backend/internal/webfetch"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("outreachd: .env file not loaded", "error", err)
	} else {
		logger.Info("outreachd: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite database")
	fetchTimeout := flag.Duration("fetch-timeout", 15*time.Second, "timeout for outbound website fetches")
	flag.Parse()

	logger.Info("outreachd: startup initiated", "addr", *addr, "db", *dbPath)

	if dir := filepath.Dir(*dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("outreachd: failed to prepare data directory", "dir", dir, "error", err)
			fmt.Println("data directory error:", err)
			os.Exit(1)
		}
	}
	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("outreachd: store initialization failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer store.Close()

	provider := llm.NewProvider()
	logger.Info("outreachd: llm provider ready", "provider", provider.Name())

	// Enrichment keeps a tighter character budget than the standalone
	// website analyzer. Fetched pages are cached so retried generations
	// against the same contact do not re-crawl.
	pageFetcher := webfetch.NewCachedFetcher(
		webfetch.NewClient(webfetch.Config{Timeout: *fetchTimeout, MaxChars: 5000}), 128, 10*time.Minute)
	analyzeFetcher := webfetch.NewClient(webfetch.Config{Timeout: *fetchTimeout, MaxChars: 8000})

	server, err := api.NewServer(api.Deps{
		Store:           store,
		Provider:        provider,
		Fetcher:         pageFetcher,
		AnalyzerFetcher: analyzeFetcher,
	})
	if err != nil {
		logger.Error("outreachd: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("outreachd: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("outreachd: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("outreachd: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDBPath() string {
	return filepath.Join("data", "outreach.db")
}
