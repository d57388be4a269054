// Package domain holds DTOs for spam check http and service contracts
package domain

import (
	"spamguard/internal/core/detector"
	"spamguard/internal/core/rulepack"
)

// Kind selects which detector entry point scores a post
type Kind = string

// Post kinds. Anything other than KindAnswer is scored as a question
const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
)

// Content formats
const (
	FormatText = "text"
	FormatHTML = "html"
)

// CheckRequest is one post to score
type CheckRequest struct {
	Title   string `json:"title,omitempty" example:"Best way to buy cheap followers?"`
	Content string `json:"content" validate:"required" example:"Click here for a limited time offer"`
	Type    string `json:"type,omitempty" example:"question"`
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=text html" example:"text"`
}

// CheckResult is the scored outcome of one post
type CheckResult struct {
	CheckID   string             `json:"checkId" example:"0b6f3c2e-5d1a-4f5e-9a57-8c2f0d1e3b4a"`
	Type      Kind               `json:"type" example:"question"`
	IsSpam    bool               `json:"isSpam" example:"true"`
	SpamScore int                `json:"spamScore" example:"110"`
	Threshold int                `json:"threshold" example:"50"`
	Reason    []string           `json:"reason,omitempty"`
	Triggers  []detector.Trigger `json:"triggers,omitempty"`
}

// BatchRequest is a page of posts scored in one call.
// The upper bound on items is configured per deployment and enforced by the service
type BatchRequest struct {
	Items []CheckRequest `json:"items" validate:"required,min=1,dive"`
}

// BatchResult holds results in input order
type BatchResult struct {
	Results []CheckResult `json:"results"`
	Total   int           `json:"total" example:"2"`
	Spam    int           `json:"spam" example:"1"`
}

// RulesView is the effective rule pack as served to moderator tooling
type RulesView struct {
	Name      string         `json:"name" example:"forum-default"`
	Version   int            `json:"version" example:"1"`
	Threshold int            `json:"threshold" example:"50"`
	Rules     []string       `json:"rules"`
	Table     rulepack.Table `json:"table"`
}
