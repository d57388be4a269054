// Package modkit provides module wiring and core deps
package modkit

import (
	"spamguard/internal/core/detector"
	"spamguard/internal/core/rulepack"
	perr "spamguard/internal/platform/errors"
	"spamguard/internal/platform/config"
	"spamguard/internal/platform/logger"
	"spamguard/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	Detector *detector.Detector
	Metrics  *metrics.Metrics // nil disables metrics
}

// DetectorOrDefault returns the injected detector, falling back to the
// process default built from the embedded rule pack
func (d Deps) DetectorOrDefault() *detector.Detector {
	if d.Detector != nil {
		return d.Detector
	}
	return detector.Default()
}

// LoadDetector builds a detector over the embedded rule pack, overlaid with
// the YAML or JSON file at path when path is set
func LoadDetector(path string) (*detector.Detector, error) {
	if path == "" {
		return detector.Default(), nil
	}
	p, err := rulepack.LoadFile(path)
	if err != nil {
		return nil, perr.RulePackf(err, "load rule pack %s", path)
	}
	return detector.New(p), nil
}
