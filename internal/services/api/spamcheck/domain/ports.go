package domain

import "context"

// ServicePort is the interface implemented by the spam check service
type ServicePort interface {
	Check(ctx context.Context, in CheckRequest) (CheckResult, error)
	CheckBatch(ctx context.Context, in BatchRequest) (BatchResult, error)
	Rules(ctx context.Context) (RulesView, error)
}
