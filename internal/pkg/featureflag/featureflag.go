package featureflag

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Flags are remotely toggled feature switches. enable_bulk_generate guards
// the bulk payslip endpoint.
type Flags struct {
	PromoBannerActive  bool `json:"promo_banner_active"`
	ShowGlobalNotice   bool `json:"show_global_notice"`
	EnableExperimental bool `json:"enable_experimental_feature"`
	EnableBulkGenerate bool `json:"enable_bulk_generate"`
}

type TuningValues struct {
	DefaultRate         decimal.Decimal `json:"default_rate"`
	GlobalNoticeMessage string          `json:"global_notice_message"`
}

type RemoteConfig struct {
	FeatureFlags Flags        `json:"feature_flags"`
	TuningValues TuningValues `json:"tuning_values"`
}

func defaultConfig() RemoteConfig {
	return RemoteConfig{
		FeatureFlags: Flags{
			PromoBannerActive:  false,
			ShowGlobalNotice:   false,
			EnableExperimental: false,
			EnableBulkGenerate: true,
		},
		TuningValues: TuningValues{
			DefaultRate:         decimal.NewFromFloat(0.95),
			GlobalNoticeMessage: "",
		},
	}
}

// Service fetches a remote JSON config and caches the last successful
// result. Fetch failures keep the previous config, so the service degrades
// to its defaults when the remote source never responds.
type Service struct {
	url    string
	client *http.Client

	mu     sync.RWMutex
	config RemoteConfig
}

func NewService(url string) *Service {
	return &Service{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		config: defaultConfig(),
	}
}

// Refresh fetches the remote config and merges it over the current one.
// An empty URL disables remote fetching entirely.
func (s *Service) Refresh(ctx context.Context) error {
	if s.url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("build remote config request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Warn("Remote config fetch failed, keeping last known config", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Remote config fetch returned non-OK status", "status", resp.StatusCode)
		return nil
	}

	var remote RemoteConfig
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return fmt.Errorf("decode remote config: %w", err)
	}

	s.mu.Lock()
	s.config = remote
	s.mu.Unlock()

	slog.Info("Remote config applied", "bulk_generate_enabled", remote.FeatureFlags.EnableBulkGenerate)
	return nil
}

func (s *Service) Config() RemoteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Service) BulkGenerateEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.FeatureFlags.EnableBulkGenerate
}
