package detector

import (
	"fmt"
	"unicode/utf8"
)

// input is the per-call view every rule reads from
type input struct {
	combined   string // lower(title + " " + content)
	content    string // original case
	contentLen int    // in runes
	links      int    // link pattern matches in content
}

// rule evaluates one check and returns the triggers it produced (nil when it did not fire)
type rule struct {
	name string
	eval func(in *input) []Trigger
}

func (d *Detector) buildRules() []rule {
	return []rule{
		{RuleSpamKeyword, d.keywords},
		{RuleProhibitedContent, d.prohibited},
		{RuleExcessiveURLs, d.excessiveURLs},
		{RuleExcessiveCaps, d.capitalization},
		{RuleRepeatedCharacters, d.repetition},
		{RuleShortContentWithURLs, d.shortWithURLs},
		{RulePromotionalLanguage, d.promotional},
	}
}

// keywords fires once per distinct keyword found anywhere in the combined text,
// emitted in list order regardless of where they appear
func (d *Detector) keywords(in *input) []Trigger {
	kws := d.p.Keywords
	if len(kws) == 0 || d.p.KeywordWeight == 0 {
		return nil
	}
	seen := d.ac.Present(in.combined, len(kws))
	var out []Trigger
	for i, kw := range kws {
		if !seen[i] {
			continue
		}
		out = append(out, Trigger{
			Rule:   RuleSpamKeyword,
			Weight: d.p.KeywordWeight,
			Reason: fmt.Sprintf("Contains spam keyword: \"%s\"", kw),
		})
	}
	return out
}

// prohibited fires once per pattern and reports the first matched text
func (d *Detector) prohibited(in *input) []Trigger {
	var out []Trigger
	for _, pat := range d.p.Prohibited {
		if pat.Weight == 0 {
			continue
		}
		loc := pat.Re.FindStringIndex(in.combined)
		if loc == nil {
			continue
		}
		out = append(out, Trigger{
			Rule:   RuleProhibitedContent,
			Weight: pat.Weight,
			Reason: fmt.Sprintf("Contains prohibited content: \"%s\"", in.combined[loc[0]:loc[1]]),
		})
	}
	return out
}

func (d *Detector) excessiveURLs(in *input) []Trigger {
	l := d.p.Links
	if l.Weight == 0 || in.links <= l.Max {
		return nil
	}
	return []Trigger{{
		Rule:   RuleExcessiveURLs,
		Weight: l.Weight,
		Reason: fmt.Sprintf("Excessive URLs detected (%d links)", in.links),
	}}
}

// capitalization compares ASCII uppercase letters to all ASCII letters.
// Content without letters never fires
func (d *Detector) capitalization(in *input) []Trigger {
	if d.p.CapsWeight == 0 {
		return nil
	}
	var upper, letters int
	for i := 0; i < len(in.content); i++ {
		c := in.content[i]
		switch {
		case c >= 'A' && c <= 'Z':
			upper++
			letters++
		case c >= 'a' && c <= 'z':
			letters++
		}
	}
	if letters == 0 || float64(upper)/float64(letters) <= d.p.CapsRatio {
		return nil
	}
	return []Trigger{{
		Rule:   RuleExcessiveCaps,
		Weight: d.p.CapsWeight,
		Reason: "Excessive capitalization detected",
	}}
}

func (d *Detector) repetition(in *input) []Trigger {
	if d.p.RepeatWeight == 0 || !hasRun(in.content, d.p.RepeatRun) {
		return nil
	}
	return []Trigger{{
		Rule:   RuleRepeatedCharacters,
		Weight: d.p.RepeatWeight,
		Reason: "Excessive repeated characters",
	}}
}

// hasRun reports whether s holds n or more identical consecutive runes.
// Line terminators never count toward a run
func hasRun(s string, n int) bool {
	if n < 1 {
		return false
	}
	var prev rune = -1
	run := 0
	for _, r := range s {
		if isLineTerminator(r) {
			prev, run = -1, 0
			continue
		}
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}

func (d *Detector) shortWithURLs(in *input) []Trigger {
	l := d.p.Links
	if l.ShortWeight == 0 || in.links == 0 || in.contentLen >= l.ShortContentLen {
		return nil
	}
	return []Trigger{{
		Rule:   RuleShortContentWithURLs,
		Weight: l.ShortWeight,
		Reason: "Short content with URLs",
	}}
}

// promotional fires once per matching pattern with a shared reason
func (d *Detector) promotional(in *input) []Trigger {
	var out []Trigger
	for _, pat := range d.p.Promotional {
		if pat.Weight == 0 || !pat.Re.MatchString(in.combined) {
			continue
		}
		out = append(out, Trigger{
			Rule:   RulePromotionalLanguage,
			Weight: pat.Weight,
			Reason: "Contains promotional language",
		})
	}
	return out
}

func newInput(d *Detector, combined, content string) *input {
	return &input{
		combined:   combined,
		content:    content,
		contentLen: utf8.RuneCountInString(content),
		links:      len(d.p.Links.Re.FindAllStringIndex(content, -1)),
	}
}
