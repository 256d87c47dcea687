package admin

import (
	"errors"
	"net/http"

	"community-portal/internal/admission"
	"community-portal/internal/app/http/middleware"
	"community-portal/internal/domain/errs"
	"community-portal/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	ctl     *admission.Controller
	metrics *metrics.Collector
}

func NewHandler(ctl *admission.Controller, collector *metrics.Collector) *Handler {
	return &Handler{ctl: ctl, metrics: collector}
}

func respondAdmissionError(c *gin.Context, err error) {
	var pf *errs.PartialFailure
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.As(err, &pf):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Removal partially failed; manual cleanup required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func targetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) ListPending(c *gin.Context) {
	out, err := h.ctl.ListPending(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondAdmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListAll(c *gin.Context) {
	out, err := h.ctl.ListAll(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondAdmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := targetID(c)
	if !ok {
		return
	}
	if err := h.ctl.Approve(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondAdmissionError(c, err)
		return
	}
	h.metrics.RecordAdmission("approve")
	c.JSON(http.StatusOK, gin.H{"message": "User approved"})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := targetID(c)
	if !ok {
		return
	}
	if err := h.ctl.Reject(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondAdmissionError(c, err)
		return
	}
	h.metrics.RecordAdmission("reject")
	c.JSON(http.StatusOK, gin.H{"message": "User rejected and removed"})
}

func (h *Handler) SetAdmin(c *gin.Context) {
	id, ok := targetID(c)
	if !ok {
		return
	}

	var body struct {
		IsAdmin *bool `json:"is_admin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing is_admin"})
		return
	}

	if err := h.ctl.SetAdmin(c.Request.Context(), middleware.UserID(c), id, *body.IsAdmin); err != nil {
		respondAdmissionError(c, err)
		return
	}
	h.metrics.RecordAdmission("set_admin")
	c.JSON(http.StatusOK, gin.H{"message": "Admin flag updated"})
}
