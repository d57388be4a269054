// Package http provides meta endpoints
package http

import (
	"fmt"
	"net/http"
	"time"

	"spamguard/internal/core/detector"
	"spamguard/internal/core/version"
	"spamguard/internal/modkit/httpkit"
)

// Deps are the handler dependencies. A nil Detector means the embedded pack
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Detector    *detector.Detector
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Detector == nil {
		d.Detector = detector.Default()
	}
	h := &handlers{deps: d, now: time.Now}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/detector", h.detector)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"spamguard-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"detector"`
	Status string `json:"status" example:"ok"`
	Detail string `json:"detail,omitempty" example:"forum-default v1"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"spamguard-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// DetectorResponse reports the loaded rule pack and build info
type DetectorResponse struct {
	DetectorVersion int               `json:"detector_version" example:"1"`
	Pack            string            `json:"pack"             example:"forum-default"`
	Threshold       int               `json:"threshold"        example:"50"`
	Keywords        int               `json:"keywords"         example:"16"`
	Rules           []string          `json:"rules"`
	Build           version.BuildInfo `json:"build"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	// the rule pack compiles before the server starts, so a running
	// server always has one
	p := h.deps.Detector.Pack()
	return ReadyResponse{
		Status: "ok",
		Checks: []ReadyCheck{{Name: "detector", Status: "ok", Detail: fmt.Sprintf("%s v%d", p.Name, p.Version)}},
		Now:    h.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.InfoFor(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/detector Meta metaDetector
// @Summary Rule pack version and build
// @Tags Meta
// @Produce json
// @Success 200 type DetectorResponse ok
// @Router /meta/detector [get]
func (h *handlers) detector(_ *http.Request) (any, error) {
	p := h.deps.Detector.Pack()
	return DetectorResponse{
		DetectorVersion: p.Version,
		Pack:            p.Name,
		Threshold:       p.Threshold,
		Keywords:        len(p.Keywords),
		Rules:           append([]string(nil), detector.RuleNames...),
		Build:           version.InfoFor(h.deps.ServiceName),
	}, nil
}
