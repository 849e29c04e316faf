package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// home godoc
// @Summary Service root
// @Description Returns the service name.
// @Tags meta
// @Produce  plain
// @Success 200 {string} string "student ledger service"
// @Router / [get]
func home(c *gin.Context) {
	c.String(http.StatusOK, "student ledger service")
}
