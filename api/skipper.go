package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouteSkipper skips the given routes. Routes ending with "/*" skip every path under the prefix.
func RouteSkipper(routes []string) middleware.Skipper {
	routesMap := map[string]struct{}{}
	var prefixes []string
	for _, route := range routes {
		if prefix, ok := strings.CutSuffix(route, "/*"); ok {
			prefixes = append(prefixes, prefix+"/")
			continue
		}
		routesMap[route] = struct{}{}
	}

	return func(ec echo.Context) bool {
		path := ec.Request().URL.Path
		if _, ok := routesMap[path]; ok {
			return true
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}
}
