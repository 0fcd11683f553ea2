package ratelimit

import (
	"strings"
)

// unlimited is returned for endpoints that are never limited.
var unlimited = &EndpointConfig{Limit: 0}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// An exact path wins over a prefix pattern (a Path ending in "/"). Returns nil when
// nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
