package httpkit

import "strings"

// APIPrefix is where every versioned scope lives
const APIPrefix = "/api/"

// MountAPI opens the /api/{version} scope the modules register under.
// Slashes around version are ignored and an empty version means v1:
//
//	httpkit.MountAPIV1(r, httpkit.CommonStack(stack), func(v1 httpkit.Router) {
//		spamcheck.MountRoutes(v1) // /api/v1/spam-detection
//	})
func MountAPI(r Router, version string, mw Middlewares, mount func(Router)) {
	ver := strings.Trim(version, "/")
	if ver == "" {
		ver = "v1"
	}
	MountUnder(r, APIPrefix+ver, mw, mount)
}

// MountAPIV1 mounts the current API version
func MountAPIV1(r Router, mw Middlewares, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
