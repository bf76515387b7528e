package engine

import (
	"log/slog"

	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/template"
)

// Selected is the winning template for a document.
type Selected struct {
	Key      string
	Template template.Template
	Score    float64
}

// SelectTemplate scores every enabled registration against the full document
// text and returns the best match. A candidate replaces the current best only
// on a strictly greater score, so on ties the earliest-registered candidate
// wins; registration order is part of the contract. A false second return
// means no template scored above zero, which is a first-class outcome.
func SelectTemplate(regs []template.Registration, settings common.Settings, text string, logger *slog.Logger) (Selected, bool) {
	if logger == nil {
		logger = slog.Default()
	}

	var best Selected
	for _, reg := range regs {
		info := reg.Template.Info()
		if settings != nil && !settings.IsTemplateEnabled(reg.Key) {
			logger.Debug("selector.skipped", "key", reg.Key, "reason", "disabled in settings")
			continue
		}
		if !info.Enabled {
			logger.Debug("selector.skipped", "key", reg.Key, "reason", "disabled in template")
			continue
		}

		score := reg.Template.ConfidenceScore(text)
		logger.Debug("selector.scored", "key", reg.Key, "score", score)
		if score > best.Score {
			best = Selected{Key: reg.Key, Template: reg.Template, Score: score}
		}
	}

	if best.Template == nil {
		logger.Info("selector.nomatch", "candidates", len(regs))
		return Selected{}, false
	}
	logger.Info("selector.ok", "key", best.Key, "name", best.Template.Info().Name, "score", best.Score)
	return best, true
}
