// Package http provides http transport for spam checks
package http

import (
	stdhttp "net/http"

	"spamguard/internal/modkit/httpkit"
	"spamguard/internal/services/api/spamcheck/domain"
	svc "spamguard/internal/services/api/spamcheck/service"
)

// Options tune request binding
type Options struct {
	// BatchBody bounds batch request bodies; zero keeps the binder default
	BatchBody int64
}

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, opt Options) {
	h := &handlers{svc: s}

	batch := httpkit.DefaultBindOptions()
	if opt.BatchBody > 0 {
		batch.MaxBytes = opt.BatchBody
	}

	httpkit.PostJSON[domain.CheckRequest](r, "/", h.check)
	httpkit.PostJSONWith[domain.BatchRequest](r, "/batch", batch, h.batch)
	httpkit.Get(r, "/rules", h.rules)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /spam-detection SpamDetection check
// @Summary Check one post
// @Tags spam-detection
// @Accept json
// @Produce json
// @Param payload body domain.CheckRequest true "Post"
// @Success 200 {object} domain.CheckResult "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /spam-detection [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckRequest) (any, error) {
	return h.svc.Check(r.Context(), in)
}

// swagger:route POST /spam-detection/batch SpamDetection batch
// @Summary Check a batch of posts
// @Tags spam-detection
// @Accept json
// @Produce json
// @Param payload body domain.BatchRequest true "Batch"
// @Success 200 {object} domain.BatchResult "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /spam-detection/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchRequest) (any, error) {
	return h.svc.CheckBatch(r.Context(), in)
}

// swagger:route GET /spam-detection/rules SpamDetection rules
// @Summary Effective rule pack
// @Tags spam-detection
// @Produce json
// @Success 200 {object} domain.RulesView "ok"
// @Router /spam-detection/rules [get]
func (h *handlers) rules(r *stdhttp.Request) (any, error) {
	return h.svc.Rules(r.Context())
}
