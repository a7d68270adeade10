package httpapi

import (
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/gin-gonic/gin"
)

// requestIDHeader mirrors the header the client sends.
const requestIDHeader = "X-Request-ID"

// NewRouter wires the handler routes plus request logging and panic recovery.
func NewRouter(h *Handler, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", h.Health)
	r.GET("/instruments", h.ListInstruments)
	r.POST("/records/list", h.ListRecords)
	r.POST("/records", h.CreateRecord)
	r.POST("/records/update", h.UpdateRecord)
	r.POST("/records/:id/delete", h.DeleteRecord)

	return r
}

func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(started),
			"request_id", c.GetHeader(requestIDHeader),
		)
	}
}
