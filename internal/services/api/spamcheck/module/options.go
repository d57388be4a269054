package module

import (
	"spamguard/internal/platform/config"
	svc "spamguard/internal/services/api/spamcheck/service"
)

// Options controls spam check behavior
type Options struct {
	MaxBatch  int   // items per batch request
	StripHTML bool  // default format is html when the request omits one
	BatchBody int64 // byte limit on batch request bodies
}

// FromConfig reads CORE_SPAM_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SPAM_")
	return Options{
		MaxBatch:  sc.MayIntRange("MAX_BATCH", svc.DefaultMaxBatch, 1, 1000),
		StripHTML: sc.MayBool("STRIP_HTML", false),
		BatchBody: int64(sc.MayInt("MAX_BATCH_BYTES", 4<<20)),
	}
}
