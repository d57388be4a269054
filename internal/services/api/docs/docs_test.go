package docs

import (
	"encoding/json"
	"reflect"
	"strconv"
	"testing"

	"spamguard/internal/core/detector"
	"spamguard/internal/services/api/spamcheck/domain"
)

type schemaDoc struct {
	Components struct {
		Schemas map[string]struct {
			Properties map[string]struct {
				Example any `json:"example"`
			} `json:"properties"`
		} `json:"schemas"`
	} `json:"components"`
}

func readDoc(t *testing.T) schemaDoc {
	t.Helper()
	var doc schemaDoc
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("doc is not json: %v", err)
	}
	return doc
}

func TestExamplesMatchDefaultPack(t *testing.T) {
	doc := readDoc(t)
	pack := detector.Default().Pack()
	threshold := float64(pack.Threshold)

	for _, name := range []string{"CheckResult", "Rules", "Detector"} {
		got := doc.Components.Schemas[name].Properties["threshold"].Example
		if got != threshold {
			t.Fatalf("%s.threshold example = %v, want %v", name, got, threshold)
		}
	}
	if got := doc.Components.Schemas["Rules"].Properties["name"].Example; got != pack.Name {
		t.Fatalf("Rules.name example = %v, want %q", got, pack.Name)
	}
	score := doc.Components.Schemas["CheckResult"].Properties["spamScore"].Example.(float64)
	if score < threshold {
		t.Fatalf("spam example scores %v under threshold %v", score, threshold)
	}
}

func TestStructExamplesMatchDefaultPack(t *testing.T) {
	pack := detector.Default().Pack()
	want := strconv.Itoa(pack.Threshold)

	tag := func(v any, field string) string {
		f, ok := reflect.TypeOf(v).FieldByName(field)
		if !ok {
			t.Fatalf("%T has no field %s", v, field)
		}
		return f.Tag.Get("example")
	}
	if got := tag(domain.CheckResult{}, "Threshold"); got != want {
		t.Fatalf("CheckResult.Threshold example = %q, want %q", got, want)
	}
	if got := tag(domain.RulesView{}, "Threshold"); got != want {
		t.Fatalf("RulesView.Threshold example = %q, want %q", got, want)
	}
	if got := tag(domain.RulesView{}, "Name"); got != pack.Name {
		t.Fatalf("RulesView.Name example = %q, want %q", got, pack.Name)
	}
	score, err := strconv.Atoi(tag(domain.CheckResult{}, "SpamScore"))
	if err != nil || score < pack.Threshold {
		t.Fatalf("CheckResult.SpamScore example = %d (%v), want >= %d", score, err, pack.Threshold)
	}
}
