// Package detector scores forum text against the spam rule pack.
//
// Every rule is evaluated on every call; the score is the sum of the weights
// of the rules that fired and the text is spam once the score reaches the
// pack threshold. A Detector is read-only after New and safe for concurrent use
package detector

import (
	"strings"
	"sync"

	"spamguard/internal/core/rulepack"
)

// Detector evaluates the ordered rule list of one compiled pack
type Detector struct {
	p     *rulepack.Pack
	ac    *acAutomaton
	rules []rule
}

// New builds a Detector over p. p must not be modified afterwards
func New(p *rulepack.Pack) *Detector {
	d := &Detector{p: p}

	ac := newAutomaton()
	for i, kw := range p.Keywords {
		ac.AddPattern([]byte(kw), i)
	}
	ac.Build()
	d.ac = ac

	d.rules = d.buildRules()
	return d
}

// Pack returns the rule pack the detector was built from
func (d *Detector) Pack() *rulepack.Pack { return d.p }

// Threshold is the score at which text is classified as spam
func (d *Detector) Threshold() int { return d.p.Threshold }

// DetectSpam scores a question (or any titled post). title may be empty
func (d *Detector) DetectSpam(title, content string) Result {
	combined := strings.ToLower(title + " " + content)
	in := newInput(d, combined, content)

	var res Result
	for _, r := range d.rules {
		for _, t := range r.eval(in) {
			res.SpamScore += t.Weight
			res.Reason = append(res.Reason, t.Reason)
			res.Triggers = append(res.Triggers, t)
		}
	}
	res.IsSpam = res.SpamScore >= d.p.Threshold
	return res
}

// DetectAnswerSpam scores an answer, which has no title
func (d *Detector) DetectAnswerSpam(content string) Result {
	return d.DetectSpam("", content)
}

var defaultDetector = sync.OnceValue(func() *Detector {
	p, err := rulepack.Load()
	if err != nil {
		panic("detector: embedded rule pack: " + err.Error())
	}
	return New(p)
})

// Default returns the detector over the embedded rule pack
func Default() *Detector { return defaultDetector() }

// DetectSpam scores title and content with the default detector
func DetectSpam(title, content string) Result {
	return Default().DetectSpam(title, content)
}

// DetectAnswerSpam scores answer content with the default detector
func DetectAnswerSpam(content string) Result {
	return Default().DetectAnswerSpam(content)
}
