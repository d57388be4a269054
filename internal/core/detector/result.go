package detector

import "strings"

// Rule names, in evaluation order
const (
	RuleSpamKeyword          = "spam_keyword"
	RuleProhibitedContent    = "prohibited_content"
	RuleExcessiveURLs        = "excessive_urls"
	RuleExcessiveCaps        = "excessive_capitalization"
	RuleRepeatedCharacters   = "repeated_characters"
	RuleShortContentWithURLs = "short_content_with_urls"
	RulePromotionalLanguage  = "promotional_language"
)

// RuleNames lists every rule in the order the detector evaluates them
var RuleNames = []string{
	RuleSpamKeyword,
	RuleProhibitedContent,
	RuleExcessiveURLs,
	RuleExcessiveCaps,
	RuleRepeatedCharacters,
	RuleShortContentWithURLs,
	RulePromotionalLanguage,
}

// Trigger is one rule firing: the weight it added and the human readable reason
type Trigger struct {
	Rule   string `json:"rule"`
	Weight int    `json:"weight"`
	Reason string `json:"reason"`
}

// Result is the outcome of scoring one piece of text.
// Reason[i] always equals Triggers[i].Reason
type Result struct {
	IsSpam    bool      `json:"isSpam"`
	SpamScore int       `json:"spamScore"`
	Reason    []string  `json:"reason"`
	Triggers  []Trigger `json:"triggers"`
}

// Summary joins the reasons into the single string form stored alongside flagged posts
func (r Result) Summary() string {
	return strings.Join(r.Reason, "; ")
}

// Fired reports whether the named rule contributed to the score
func (r Result) Fired(rule string) bool {
	for _, t := range r.Triggers {
		if t.Rule == rule {
			return true
		}
	}
	return false
}
