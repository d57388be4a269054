// Package service contains the spam check workflows
package service

import (
	"context"
	"fmt"
	"time"

	"spamguard/internal/core/detector"
	"spamguard/internal/core/plaintext"
	perr "spamguard/internal/platform/errors"
	"spamguard/internal/platform/logger"
	"spamguard/internal/platform/metrics"
	"spamguard/internal/services/api/spamcheck/domain"

	"github.com/google/uuid"
)

// DefaultMaxBatch caps batch size when Options leaves it unset
const DefaultMaxBatch = 100

// Service is the public service port
type Service interface{ domain.ServicePort }

// Options control service behavior
type Options struct {
	// MaxBatch bounds BatchRequest.Items
	MaxBatch int

	// StripHTML makes html the format for requests that do not name one
	StripHTML bool
}

// Svc implements the service port
type Svc struct {
	det     *detector.Detector
	metrics *metrics.Metrics
	opts    Options

	newID func() string
	now   func() time.Time
}

// New constructs the service. m may be nil
func New(det *detector.Detector, m *metrics.Metrics, opt Options) *Svc {
	if det == nil {
		panic("spamcheck.Service requires a non nil Detector")
	}
	if opt.MaxBatch <= 0 {
		opt.MaxBatch = DefaultMaxBatch
	}
	return &Svc{
		det:     det,
		metrics: m,
		opts:    opt,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// prepared is a request after defaults and markup stripping
type prepared struct {
	kind    domain.Kind
	title   string
	content string
}

// prepare validates one request. field prefixes validation errors for batch items
func (s *Svc) prepare(in domain.CheckRequest, field string) (prepared, error) {
	p := prepared{kind: domain.KindQuestion}
	if in.Type == domain.KindAnswer {
		p.kind = domain.KindAnswer
	}

	format := in.Format
	if format == "" {
		format = domain.FormatText
		if s.opts.StripHTML {
			format = domain.FormatHTML
		}
	}

	// required checks run on what the detector will see, so a body of
	// only invisible runes counts as empty
	switch format {
	case domain.FormatText:
		p.content = plaintext.Sanitize(in.Content)
	case domain.FormatHTML:
		text, err := plaintext.FromHTML(in.Content)
		if err != nil {
			return p, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "content is not parseable html"), field+"content")
		}
		p.content = text
	default:
		return p, perr.Validationf(field+"format", "format must be one of [text html]")
	}
	p.title = plaintext.Sanitize(in.Title)

	if p.content == "" {
		return p, perr.Validationf(field+"content", "content is required")
	}
	if p.kind == domain.KindQuestion && p.title == "" {
		return p, perr.Validationf(field+"title", "title is required for question type")
	}
	return p, nil
}

// score runs the detector and records the outcome
func (s *Svc) score(ctx context.Context, p prepared) domain.CheckResult {
	id := s.newID()
	ctx = logger.WithCheck(ctx, id)

	start := s.now()
	var res detector.Result
	if p.kind == domain.KindAnswer {
		res = s.det.DetectAnswerSpam(p.content)
	} else {
		res = s.det.DetectSpam(p.title, p.content)
	}
	elapsed := s.now().Sub(start)

	rules := make([]string, 0, len(res.Triggers))
	for _, t := range res.Triggers {
		rules = append(rules, t.Rule)
	}
	s.metrics.ObserveCheck(p.kind, res.IsSpam, res.SpamScore, elapsed, rules)

	if res.IsSpam {
		logger.C(ctx).Info().
			Str("kind", p.kind).
			Int("score", res.SpamScore).
			Strs("rules", rules).
			Msg("spam detected")
	} else {
		logger.C(ctx).Debug().
			Str("kind", p.kind).
			Int("score", res.SpamScore).
			Msg("check passed")
	}

	return domain.CheckResult{
		CheckID:   id,
		Type:      p.kind,
		IsSpam:    res.IsSpam,
		SpamScore: res.SpamScore,
		Threshold: s.det.Threshold(),
		Reason:    res.Reason,
		Triggers:  res.Triggers,
	}
}

// Check scores one post
func (s *Svc) Check(ctx context.Context, in domain.CheckRequest) (domain.CheckResult, error) {
	p, err := s.prepare(in, "")
	if err != nil {
		s.metrics.ObserveInvalid(p.kind)
		return domain.CheckResult{}, err
	}
	return s.score(ctx, p), nil
}

// CheckBatch validates every item before scoring any, so a rejected batch leaves no metrics behind
func (s *Svc) CheckBatch(ctx context.Context, in domain.BatchRequest) (domain.BatchResult, error) {
	if len(in.Items) == 0 {
		return domain.BatchResult{}, perr.Validationf("items", "items must contain at least 1 item")
	}
	if len(in.Items) > s.opts.MaxBatch {
		return domain.BatchResult{}, perr.Validationf("items", "items must contain at most %d items", s.opts.MaxBatch)
	}

	ps := make([]prepared, len(in.Items))
	for i, item := range in.Items {
		p, err := s.prepare(item, fmt.Sprintf("items[%d].", i))
		if err != nil {
			s.metrics.ObserveInvalid(p.kind)
			return domain.BatchResult{}, err
		}
		ps[i] = p
	}

	s.metrics.ObserveBatch(len(ps))
	out := domain.BatchResult{Results: make([]domain.CheckResult, len(ps)), Total: len(ps)}
	for i, p := range ps {
		if err := ctx.Err(); err != nil {
			return domain.BatchResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled")
		}
		out.Results[i] = s.score(ctx, p)
		if out.Results[i].IsSpam {
			out.Spam++
		}
	}
	return out, nil
}

// Rules returns the effective rule pack
func (s *Svc) Rules(_ context.Context) (domain.RulesView, error) {
	p := s.det.Pack()
	return domain.RulesView{
		Name:      p.Name,
		Version:   p.Version,
		Threshold: p.Threshold,
		Rules:     append([]string(nil), detector.RuleNames...),
		Table:     p.Table(),
	}, nil
}
