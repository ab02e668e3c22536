package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by each handler that owns a slice of the
// invoice API surface.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Mount groups the API under its version prefix and lets every handler
// register its own routes inside it.
func Mount(engine *gin.Engine, version string, handlers ...RouteRegistrar) {
	api := engine.Group("/api/" + version)
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
}
