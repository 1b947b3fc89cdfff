package landing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayursync/web/internal/handler"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Landing)
}

func (h *Handler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.html", handler.NewPage(c, "AyurSync AI", ""))
}
