package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPTimeout != 10 {
		t.Errorf("HTTPTimeout = %d, want 10", cfg.HTTPTimeout)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.CrawlDelay() != 500*time.Millisecond {
		t.Errorf("CrawlDelay() = %v", cfg.CrawlDelay())
	}
	if cfg.SearchDelayDuration() != 5*time.Second {
		t.Errorf("SearchDelayDuration() = %v", cfg.SearchDelayDuration())
	}
	if cfg.CrawlMaxPages != 100 {
		t.Errorf("CrawlMaxPages = %d, want 100", cfg.CrawlMaxPages)
	}
	if cfg.SearchResults != 10 {
		t.Errorf("SearchResults = %d, want 10", cfg.SearchResults)
	}
}

func TestListSplitting(t *testing.T) {
	cfg := &Config{
		SearchUserAgents: "ua-1, ua-2 ,",
		ProxyURLs:        "",
	}

	uas := cfg.UserAgents()
	if len(uas) != 2 || uas[0] != "ua-1" || uas[1] != "ua-2" {
		t.Errorf("UserAgents() = %v", uas)
	}
	if proxies := cfg.Proxies(); proxies != nil {
		t.Errorf("Proxies() = %v, want nil", proxies)
	}
}
