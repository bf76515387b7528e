package common

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
)

// Settings is the external configuration consulted by the extraction core:
// per-template administrative enable flags and the shared (fallback)
// template-definition folder.
type Settings interface {
	IsTemplateEnabled(name string) bool
	SharedTemplateDir() string
}

// fileSettings reads the original config.json layout. Templates absent from
// the map are enabled; only an explicit false disables one.
type fileSettings struct {
	mu   sync.RWMutex
	path string

	SharedTemplatesFolder string          `json:"shared_templates_folder"`
	PollIntervalSeconds   int             `json:"poll_interval"`
	ConsolidateInvoices   bool            `json:"consolidate_multi_invoice"`
	Templates             map[string]bool `json:"templates"`
}

// LoadSettings reads settings from a config.json file. A missing or
// unreadable file yields defaults (everything enabled, no shared folder).
func LoadSettings(path string, logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	s := &fileSettings{path: path, Templates: map[string]bool{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("settings.read.failed", "path", path, "err", err)
		}
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		logger.Warn("settings.parse.failed", "path", path, "err", err)
		return &fileSettings{path: path, Templates: map[string]bool{}}
	}
	if s.Templates == nil {
		s.Templates = map[string]bool{}
	}
	return s
}

func (s *fileSettings) IsTemplateEnabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enabled, ok := s.Templates[name]
	if !ok {
		return true
	}
	return enabled
}

func (s *fileSettings) SharedTemplateDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SharedTemplatesFolder
}

// StaticSettings is a fixed in-memory Settings, used by tests and one-shot
// drivers that bypass config.json.
type StaticSettings struct {
	Disabled  map[string]bool
	SharedDir string
}

func (s StaticSettings) IsTemplateEnabled(name string) bool {
	return !s.Disabled[name]
}

func (s StaticSettings) SharedTemplateDir() string {
	return s.SharedDir
}
