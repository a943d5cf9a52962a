package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"claimcheck/internal/api"
	"claimcheck/internal/check"
	"claimcheck/internal/classify"
	"claimcheck/internal/feedback"
	"claimcheck/internal/ledger"
	"claimcheck/internal/quota"
	"claimcheck/internal/search"
	"claimcheck/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	googleKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	if googleKey == "" {
		logrus.Fatal("missing GOOGLE_API_KEY")
	}
	googleCX := strings.TrimSpace(os.Getenv("GOOGLE_CX_ID"))
	if googleCX == "" {
		logrus.Fatal("missing GOOGLE_CX_ID")
	}
	openaiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if openaiKey == "" {
		logrus.Fatal("missing OPENAI_API_KEY")
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "data"
	}

	kv, err := openStore(dataDir)
	if err != nil {
		logrus.Fatalf("open store: %v", err)
	}

	searchCfg := search.Config{APIKey: googleKey, CX: googleCX}
	if timeout := os.Getenv("SEARCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			searchCfg.Timeout = d
		}
	}
	if base := strings.TrimSpace(os.Getenv("SEARCH_BASE_URL")); base != "" {
		searchCfg.BaseURL = base
	}

	searcher, err := search.NewClient(searchCfg)
	if err != nil {
		logrus.Fatalf("search client: %v", err)
	}

	classifyCfg := classify.Config{
		APIKey:  openaiKey,
		Model:   os.Getenv("OPENAI_MODEL"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}
	if temp := os.Getenv("OPENAI_TEMPERATURE"); temp != "" {
		if v, err := strconv.ParseFloat(temp, 32); err == nil {
			classifyCfg.Temperature = float32(v)
		}
	}
	if maxTokens := os.Getenv("OPENAI_MAX_TOKENS"); maxTokens != "" {
		if v, err := strconv.Atoi(maxTokens); err == nil {
			classifyCfg.MaxTokens = v
		}
	}

	classifier, err := classify.NewClient(classifyCfg)
	if err != nil {
		logrus.Fatalf("classifier client: %v", err)
	}

	dailyLimit := 0
	if v := strings.TrimSpace(os.Getenv("DAILY_LIMIT")); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			dailyLimit = val
		}
	}

	tracker := quota.NewTracker(kv, dailyLimit)
	led := ledger.New(kv)
	fb := feedback.NewLog(kv)
	checker := check.NewService(searcher, classifier, tracker, led)

	var allowedOrigins []string
	if raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	server, err := api.NewServer(api.Config{
		TemplateGlob:   filepath.Join("web", "templates", "*.html"),
		AllowedOrigins: allowedOrigins,
	}, checker, fb, led)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}

	logrus.Infof("starting claimcheck server on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

// openStore selects the persistence backend. Both backends store the same
// whole JSON documents; sqlite trades the flat files for a single database
// file.
func openStore(dataDir string) (store.KV, error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if backend == "sqlite" {
		dbPath := filepath.Join(dataDir, "claimcheck.db")
		if override := strings.TrimSpace(os.Getenv("CLAIMCHECK_DB_PATH")); override != "" {
			dbPath = override
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
		return store.Open(dbPath, false)
	}
	return store.NewFileStore(dataDir)
}
