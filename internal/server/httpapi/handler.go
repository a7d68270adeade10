// Package httpapi exposes the reference backend over JSON/HTTP with gin.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/common"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/dmitrijs2005/ledgerbook/internal/server/records"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo records.Repository
	log  logging.Logger
}

func NewHandler(repo records.Repository, log logging.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// ListRecords handles POST /records/list
func (h *Handler) ListRecords(c *gin.Context) {
	var q models.RecordQuery
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
			return
		}
	}

	out, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateRecord handles POST /records
func (h *Handler) CreateRecord(c *gin.Context) {
	var r models.Record
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record: " + err.Error()})
		return
	}
	if r.ID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new record must not carry an id"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), r)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateRecord handles POST /records/update
func (h *Handler) UpdateRecord(c *gin.Context) {
	var r models.Record
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record: " + err.Error()})
		return
	}
	if err := h.repo.Update(c.Request.Context(), r); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRecord handles POST /records/:id/delete
func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListInstruments handles GET /instruments
func (h *Handler) ListInstruments(c *gin.Context) {
	out, err := h.repo.Instruments(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Health handles GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
