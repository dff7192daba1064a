package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/service/messages"
)

type MessageHandler struct {
	service messages.MessageUseCase
}

type messageRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type messageResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	DateSent string `json:"date_sent"`
	IsHidden bool   `json:"is_hidden"`
}

func NewMessageHandler(service messages.MessageUseCase) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/flight/contact-message", h.create)

	admin.GET("/flight/contact-messages", h.list)
	admin.GET("/flight/contact-messages/count", h.count)
	admin.GET("/flight/contact-message/check/:id", h.get)
	admin.PUT("/flight/contact-message/update/:id", h.update)
	admin.DELETE("/flight/contact-message/:id", h.archive)
	admin.GET("/flight/contact-message/archive", h.listArchived)
	admin.GET("/flight/contact-message/archive/:id", h.getArchived)
	admin.PATCH("/flight/contact-message/archive/:id", h.restore)
}

func toMessageResponse(m domain.ContactMessage) messageResponse {
	return messageResponse{
		ID:       m.ID,
		FullName: m.FullName,
		Email:    m.Email,
		Message:  m.Message,
		DateSent: m.DateSent.Format(time.RFC3339),
		IsHidden: m.IsHidden,
	}
}

func toMessageResponses(msgs []domain.ContactMessage) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func (h *MessageHandler) create(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.Create(c.Request.Context(), messages.MessageInput{
		FullName: req.FullName,
		Email:    req.Email,
		Message:  req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(*msg))
}

func (h *MessageHandler) list(c *gin.Context) {
	msgs, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(msgs))
}

func (h *MessageHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	msg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(*msg))
}

func (h *MessageHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.Update(c.Request.Context(), id, messages.MessageInput{
		FullName: req.FullName,
		Email:    req.Email,
		Message:  req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(*msg))
}

func (h *MessageHandler) archive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact message archived successfully"})
}

func (h *MessageHandler) restore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact message restored successfully"})
}

func (h *MessageHandler) listArchived(c *gin.Context) {
	msgs, err := h.service.ListArchived(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(msgs), "results": toMessageResponses(msgs)})
}

func (h *MessageHandler) getArchived(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	msg, err := h.service.GetArchived(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(*msg))
}

func (h *MessageHandler) count(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
