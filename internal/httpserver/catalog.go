package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	catalog catalogReader
}

func (h *catalogHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.List()})
}

func (h *catalogHandler) featured(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.Featured()})
}

func (h *catalogHandler) get(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *catalogHandler) types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"productTypes": h.catalog.Types()})
}
