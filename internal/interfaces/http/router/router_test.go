package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type registrarFunc func(rg *gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

func TestMount(t *testing.T) {
	t.Run("routes live under the version prefix", func(t *testing.T) {
		engine := gin.New()
		Mount(engine, "v1", registrarFunc(func(rg *gin.RouterGroup) {
			rg.GET("/invoices", func(c *gin.Context) {
				c.String(http.StatusOK, "listed")
			})
		}))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "listed", w.Body.String())

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("every handler registers its own routes", func(t *testing.T) {
		engine := gin.New()
		Mount(engine, "v1",
			registrarFunc(func(rg *gin.RouterGroup) {
				rg.GET("/invoices", func(c *gin.Context) { c.Status(http.StatusOK) })
			}),
			registrarFunc(func(rg *gin.RouterGroup) {
				rg.GET("/system/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
			}),
		)

		for _, path := range []string{"/api/v1/invoices", "/api/v1/system/ping"} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}
