// tmplscan scores a document against every registered template and dumps the
// bill-of-lading fields it can find. Development aid for template authors.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/ingest"
	"github.com/devhouston/ocrmill/internal/template"
	"github.com/devhouston/ocrmill/internal/template/builtin"
)

func main() {
	var (
		file      = flag.String("file", "", "document to score (PDF or TXT, required)")
		sharedDir = flag.String("templates", "", "fallback template-definition folder (overrides settings)")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: tmplscan -file <doc> [-templates <dir>]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	settings := common.LoadSettings(cfg.Templates.SettingsPath, logger)

	dir := *sharedDir
	if dir == "" {
		dir = settings.SharedTemplateDir()
	}
	if dir == "" {
		dir = cfg.Templates.SharedDir
	}
	sources := []template.Source{builtin.Source()}
	if dir != "" {
		sources = append(sources, template.NewDirSource(dir, logger))
	}
	registry := template.NewRegistry(logger, sources...)

	doc, err := ingest.ReadDocument(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	text := doc.FullText()

	fmt.Printf("document: %s (%d pages)\n\n", *file, len(doc.Pages))
	for _, reg := range registry.All() {
		info := reg.Template.Info()
		score := reg.Template.ConfidenceScore(text)
		enabled := info.Enabled && settings.IsTemplateEnabled(reg.Key)
		fmt.Printf("%-30s %-10s score=%.2f enabled=%v packing_list=%v\n",
			reg.Key, reg.Origin, score, enabled, reg.Template.IsPackingList(text))
		if score > 0 {
			inv, proj, items := template.ExtractAll(reg.Template, text)
			fmt.Printf("  invoice=%s project=%s items=%d\n", inv, proj, len(items))
		}
	}

	bol := builtin.BillOfLading{}
	for _, page := range doc.Pages {
		if !bol.CanProcess(page.Text) {
			continue
		}
		fmt.Printf("\nbill of lading on page %d:\n", page.Index+1)
		fmt.Printf("  gross_weight=%s bill_number=%s container=%s\n",
			bol.ExtractGrossWeight(page.Text),
			bol.ExtractBillNumber(page.Text),
			bol.ExtractContainerNumber(page.Text))
		break
	}
}
