package template

import (
	"io"
	"log/slog"
	"testing"

	"github.com/devhouston/ocrmill/constants"
)

type stubTemplate struct {
	name    string
	score   float64
	enabled bool
	items   []RawItem
}

func (s stubTemplate) Info() Info {
	return Info{Name: s.name, Enabled: s.enabled, Version: "0.0.0"}
}
func (s stubTemplate) CanProcess(text string) bool             { return s.score > 0 }
func (s stubTemplate) ConfidenceScore(text string) float64     { return s.score }
func (s stubTemplate) ExtractInvoiceNumber(text string) string { return Unknown }
func (s stubTemplate) ExtractProjectNumber(text string) string { return Unknown }
func (s stubTemplate) ExtractLineItems(text string) []RawItem {
	out := make([]RawItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Clone())
	}
	return out
}
func (s stubTemplate) PostProcessItems(items []RawItem) []RawItem { return DedupeItems(items) }
func (s stubTemplate) IsPackingList(text string) bool             { return false }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryPrimaryWinsOverFallback(t *testing.T) {
	primary := NewStaticSource("primary",
		Entry{Key: "acme", Template: stubTemplate{name: "acme local", enabled: true}},
	)
	fallback := NewStaticSource("fallback",
		Entry{Key: "acme", Template: stubTemplate{name: "acme shared", enabled: true}},
		Entry{Key: "globex", Template: stubTemplate{name: "globex shared", enabled: true}},
	)

	reg := NewRegistry(discardLogger(), primary, fallback)
	all := reg.All()

	if len(all) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(all))
	}
	if all[0].Key != "acme" || all[0].Origin != OriginPrimary {
		t.Errorf("entry 0 = %q/%s, want acme/primary", all[0].Key, all[0].Origin)
	}
	if got := all[0].Template.Info().Name; got != "acme local" {
		t.Errorf("primary entry should shadow fallback, got template %q", got)
	}
	if all[1].Key != "globex" || all[1].Origin != OriginFallback {
		t.Errorf("entry 1 = %q/%s, want globex/fallback", all[1].Key, all[1].Origin)
	}
}

func TestRegistryOrderIsRegistrationOrder(t *testing.T) {
	src := NewStaticSource("primary",
		Entry{Key: "c", Template: stubTemplate{name: "c", enabled: true}},
		Entry{Key: "a", Template: stubTemplate{name: "a", enabled: true}},
		Entry{Key: "b", Template: stubTemplate{name: "b", enabled: true}},
	)
	reg := NewRegistry(discardLogger(), src)

	want := []string{"c", "a", "b"}
	for i := 0; i < 3; i++ { // stable across repeated reads
		all := reg.All()
		for j, key := range want {
			if all[j].Key != key {
				t.Fatalf("read %d: entry %d = %q, want %q", i, j, all[j].Key, key)
			}
		}
	}
}

type mutableSource struct {
	name    string
	entries []Entry
}

func (m *mutableSource) Name() string           { return m.name }
func (m *mutableSource) Load() ([]Entry, error) { return append([]Entry(nil), m.entries...), nil }

func TestRegistryRefreshRebuilds(t *testing.T) {
	src := &mutableSource{name: "primary", entries: []Entry{
		{Key: "one", Template: stubTemplate{name: "one", enabled: true}},
	}}
	reg := NewRegistry(discardLogger(), src)

	if got := len(reg.All()); got != 1 {
		t.Fatalf("initial registry size = %d, want 1", got)
	}

	src.entries = append(src.entries, Entry{Key: "two", Template: stubTemplate{name: "two", enabled: true}})
	if got := len(reg.All()); got != 1 {
		t.Fatalf("registry should cache until refresh, size = %d", got)
	}

	reg.Refresh()
	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("post-refresh registry size = %d, want 2", len(all))
	}
	if all[1].Key != "two" {
		t.Errorf("post-refresh entry 1 = %q, want two", all[1].Key)
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry(discardLogger(), NewStaticSource("primary",
		Entry{Key: "acme", Template: stubTemplate{name: "acme", enabled: true}},
	))

	if _, ok := reg.Get("acme"); !ok {
		t.Error("Get(acme) not found")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) unexpectedly found")
	}
}

func TestDedupeItemsIdempotent(t *testing.T) {
	items := []RawItem{
		{constants.FieldPartNumber: "A-1", constants.FieldQuantity: "2.00", constants.FieldTotalPrice: "10.00"},
		{constants.FieldPartNumber: "A-1", constants.FieldQuantity: "2.00", constants.FieldTotalPrice: "10.00"},
		{constants.FieldPartNumber: "B-2", constants.FieldQuantity: "1.00", constants.FieldTotalPrice: "5.00"},
		{constants.FieldPartNumber: "A-1", constants.FieldQuantity: "3.00", constants.FieldTotalPrice: "10.00"},
	}

	once := DedupeItems(items)
	if len(once) != 3 {
		t.Fatalf("dedupe size = %d, want 3", len(once))
	}
	twice := DedupeItems(once)
	if len(twice) != len(once) {
		t.Fatalf("dedupe not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Key() != twice[i].Key() {
			t.Errorf("entry %d changed across dedupe runs: %q vs %q", i, once[i].Key(), twice[i].Key())
		}
	}
}

func TestNumberNormalization(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{NormalizeEuroNumber, "11.579,04", "11579.04"},
		{NormalizeEuroNumber, "1.646,70", "1646.70"},
		{NormalizeEuroNumber, "316,80", "316.80"},
		{NormalizeDecimalComma, "3,00", "3.00"},
		{NormalizeDecimalComma, "16,76", "16.76"},
		{StripThousands, "2,177.280", "2177.280"},
		{StripThousands, "4950.000", "4950.000"},
	}
	for _, tc := range tests {
		if got := tc.fn(tc.in); got != tc.want {
			t.Errorf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
