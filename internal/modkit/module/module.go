// Package module holds the contract every API module satisfies and the
// helpers for pulling typed ports back out of one
package module

import (
	phttp "spamguard/internal/platform/net/http"
)

// Module is an API feature (spamcheck, meta) that mounts its own routes and
// may hand ports to other code, such as the CLI reusing spamcheck's checker.
// It lives apart from modkit so ports helpers need no modkit import
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() PortSet
	Name() string
}
