package http

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed ui_index.html
var uiIndexHTML []byte

type RouterOptions struct {
	// AllowedOrigins lists extra browser origins allowed to call the API.
	AllowedOrigins []string
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	if mw := corsFor(opts.AllowedOrigins); mw != nil {
		r.Use(mw)
	}
	r.Use(loopbackOnly())

	api := r.Group("/api")
	{
		api.GET(PathHealth, h.Health)
		api.GET(PathState, h.State)

		api.POST(PathSession, h.Connect)
		api.POST(PathRefresh, h.Refresh)

		api.POST(PathPurchase, h.Purchase)
		api.POST(PathClaim, h.Claim)
		api.POST(PathCancel, h.Cancel)
		api.POST(PathExtend, h.Extend)
		api.POST(PathRenew, h.Renew)
		api.POST(PathDonate, h.Donate)
	}

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", uiIndexHTML)
	})

	return r
}
