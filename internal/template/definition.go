package template

import (
	"bytes"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/common"
)

// defSchema constrains declarative template definitions (draft 2020-12
// subset). Validation failures isolate per-file: a bad definition never
// blocks loading of the rest.
const defSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["name", "keywords", "line_patterns"],
  "properties": {
    "name":              {"type": "string", "minLength": 1},
    "description":       {"type": "string"},
    "client":            {"type": "string"},
    "version":           {"type": "string"},
    "enabled":           {"type": "boolean"},
    "extra_columns":     {"type": "array", "items": {"type": "string"}},
    "keywords":          {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
    "base_score":        {"type": "number", "minimum": 0, "maximum": 1},
    "keyword_increment": {"type": "number", "minimum": 0, "maximum": 1},
    "signals": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["pattern", "weight"],
        "properties": {
          "pattern": {"type": "string", "minLength": 1},
          "weight":  {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "invoice_patterns": {"type": "array", "items": {"type": "string"}},
    "project_patterns": {"type": "array", "items": {"type": "string"}},
    "line_patterns": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["pattern", "fields"],
        "properties": {
          "pattern": {"type": "string", "minLength": 1},
          "fields": {
            "type": "object",
            "minProperties": 1,
            "additionalProperties": {"type": "integer", "minimum": 1}
          },
          "euro_numbers": {"type": "boolean"}
        }
      }
    },
    "fixed_fields": {"type": "object", "additionalProperties": {"type": "string"}}
  }
}`

var defSchemaCompiled = jsonschema.MustCompileString("template_definition.json", defSchema)

// Definition is the on-disk shape of a declarative template.
type Definition struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Client           string            `json:"client"`
	Version          string            `json:"version"`
	Enabled          *bool             `json:"enabled"`
	ExtraColumns     []string          `json:"extra_columns"`
	Keywords         []string          `json:"keywords"`
	BaseScore        float64           `json:"base_score"`
	KeywordIncrement float64           `json:"keyword_increment"`
	Signals          []SignalDef       `json:"signals"`
	InvoicePatterns  []string          `json:"invoice_patterns"`
	ProjectPatterns  []string          `json:"project_patterns"`
	LinePatterns     []LinePatternDef  `json:"line_patterns"`
	FixedFields      map[string]string `json:"fixed_fields"`
}

type SignalDef struct {
	Pattern string  `json:"pattern"`
	Weight  float64 `json:"weight"`
}

type LinePatternDef struct {
	Pattern     string         `json:"pattern"`
	Fields      map[string]int `json:"fields"`
	EuroNumbers bool           `json:"euro_numbers"`
}

// LoadDefinitionFile reads, validates, and compiles one definition file.
func LoadDefinitionFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "reading template definition")
	}
	return CompileDefinition(data)
}

// CompileDefinition validates raw JSON against the definition schema and
// compiles its patterns into a ready Template.
func CompileDefinition(data []byte) (Template, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, common.NewAppError("TEMPLATE_LOAD", "definition is not valid JSON", err)
	}
	if err := defSchemaCompiled.Validate(doc); err != nil {
		return nil, common.NewAppError("TEMPLATE_LOAD", "definition failed schema validation", err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, common.NewAppError("TEMPLATE_LOAD", "definition decode failed", err)
	}

	t := &definitionTemplate{def: def}
	if def.BaseScore == 0 {
		t.baseScore = 0.7
	} else {
		t.baseScore = def.BaseScore
	}
	if def.KeywordIncrement == 0 {
		t.keywordIncrement = 0.05
	} else {
		t.keywordIncrement = def.KeywordIncrement
	}
	for _, k := range def.Keywords {
		t.keywords = append(t.keywords, strings.ToLower(k))
	}

	compile := func(exprs []string) ([]*regexp.Regexp, error) {
		var res []*regexp.Regexp
		for _, expr := range exprs {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, common.NewAppError("TEMPLATE_LOAD", "pattern does not compile: "+expr, err)
			}
			res = append(res, re)
		}
		return res, nil
	}

	var err error
	if t.invoiceRes, err = compile(def.InvoicePatterns); err != nil {
		return nil, err
	}
	if t.projectRes, err = compile(def.ProjectPatterns); err != nil {
		return nil, err
	}
	for _, lp := range def.LinePatterns {
		re, err := regexp.Compile(lp.Pattern)
		if err != nil {
			return nil, common.NewAppError("TEMPLATE_LOAD", "line pattern does not compile: "+lp.Pattern, err)
		}
		for field, group := range lp.Fields {
			if group > re.NumSubexp() {
				return nil, common.NewAppError("TEMPLATE_LOAD",
					"line pattern group out of range for field "+field, nil)
			}
		}
		t.linePatterns = append(t.linePatterns, linePattern{re: re, fields: lp.Fields, euro: lp.EuroNumbers})
	}
	for _, sig := range def.Signals {
		re, err := regexp.Compile(sig.Pattern)
		if err != nil {
			return nil, common.NewAppError("TEMPLATE_LOAD", "signal pattern does not compile: "+sig.Pattern, err)
		}
		t.signals = append(t.signals, signal{re: re, weight: sig.Weight})
	}
	return t, nil
}

type linePattern struct {
	re     *regexp.Regexp
	fields map[string]int
	euro   bool
}

type signal struct {
	re     *regexp.Regexp
	weight float64
}

// definitionTemplate is the compiled form of a declarative definition. It
// covers the common supplier-format shape: keyword detection, additive
// confidence, prioritized line patterns, fixed derived fields.
type definitionTemplate struct {
	def              Definition
	baseScore        float64
	keywordIncrement float64
	keywords         []string
	signals          []signal
	invoiceRes       []*regexp.Regexp
	projectRes       []*regexp.Regexp
	linePatterns     []linePattern
}

func (t *definitionTemplate) Info() Info {
	enabled := true
	if t.def.Enabled != nil {
		enabled = *t.def.Enabled
	}
	return Info{
		Name:         t.def.Name,
		Description:  t.def.Description,
		Client:       t.def.Client,
		Version:      t.def.Version,
		Enabled:      enabled,
		ExtraColumns: append([]string(nil), t.def.ExtraColumns...),
	}
}

func (t *definitionTemplate) CanProcess(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range t.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func (t *definitionTemplate) ConfidenceScore(text string) float64 {
	lower := strings.ToLower(text)
	matches := 0
	for _, k := range t.keywords {
		if strings.Contains(lower, k) {
			matches++
		}
	}
	if matches == 0 {
		return 0
	}
	score := t.baseScore + float64(matches-1)*t.keywordIncrement
	for _, sig := range t.signals {
		if sig.re.MatchString(text) {
			score += sig.weight
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func firstGroup(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			if len(m) > 1 {
				return strings.TrimSpace(m[1])
			}
			return strings.TrimSpace(m[0])
		}
	}
	return Unknown
}

func (t *definitionTemplate) ExtractInvoiceNumber(text string) string {
	return firstGroup(t.invoiceRes, text)
}

func (t *definitionTemplate) ExtractProjectNumber(text string) string {
	return firstGroup(t.projectRes, text)
}

func (t *definitionTemplate) ExtractLineItems(text string) []RawItem {
	// First pattern family that yields matches wins.
	for _, lp := range t.linePatterns {
		matches := lp.re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		items := make([]RawItem, 0, len(matches))
		for _, m := range matches {
			item := RawItem{}
			for field, group := range lp.fields {
				if group >= len(m) {
					continue
				}
				val := strings.TrimSpace(m[group])
				switch field {
				case constants.FieldQuantity:
					val = NormalizeDecimalComma(val)
				case constants.FieldTotalPrice, constants.FieldUnitPrice:
					if lp.euro {
						val = NormalizeEuroNumber(val)
					} else {
						val = StripThousands(val)
					}
				}
				item[field] = val
			}
			items = append(items, item)
		}
		return items
	}
	return nil
}

func (t *definitionTemplate) PostProcessItems(items []RawItem) []RawItem {
	items = DedupeItems(items)
	if len(t.def.FixedFields) == 0 {
		return items
	}
	for _, item := range items {
		for k, v := range t.def.FixedFields {
			if _, set := item[k]; !set {
				item[k] = v
			}
		}
	}
	return items
}

func (t *definitionTemplate) IsPackingList(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "packing list") && !strings.Contains(lower, "invoice")
}
