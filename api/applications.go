package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/service/applications"
)

type ApplicationHandler struct {
	service applications.ApplicationUseCase
}

type applicationRequest struct {
	Package            int64  `json:"package"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	NumberOfPassengers int    `json:"number_of_passengers"`
	PhoneNumber        string `json:"phone_number"`
	DateOfBirth        string `json:"date_of_birth"`
	Gender             string `json:"gender"`
	Nationality        string `json:"nationality"`
}

type applicationResponse struct {
	ID                 int64  `json:"id"`
	Package            int64  `json:"package"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	NumberOfPassengers int    `json:"number_of_passengers"`
	PhoneNumber        string `json:"phone_number"`
	DateOfBirth        string `json:"date_of_birth"`
	Gender             string `json:"gender"`
	Nationality        string `json:"nationality"`
	DateBooked         string `json:"date_booked"`
	IsHidden           bool   `json:"is_hidden"`
}

func NewApplicationHandler(service applications.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func (h *ApplicationHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/flight/booking-application", h.create)

	admin.GET("/flight/booking-applications", h.list)
	admin.GET("/flight/booking-applications/count", h.count)
	admin.GET("/flight/booking-application/list/:id", h.get)
	admin.PUT("/flight/booking-application/update/:id", h.update)
	admin.DELETE("/flight/booking-application/:id", h.archive)
	admin.GET("/flight/booking-application/archive", h.listArchived)
	admin.GET("/flight/booking-application/archive/:id", h.getArchived)
	admin.PATCH("/flight/booking-application/archive/:id", h.restore)
}

func toApplicationResponse(a domain.BookingApplication) applicationResponse {
	return applicationResponse{
		ID:                 a.ID,
		Package:            a.PackageID,
		FullName:           a.FullName,
		Email:              a.Email,
		NumberOfPassengers: a.NumberOfPassengers,
		PhoneNumber:        a.PhoneNumber,
		DateOfBirth:        formatDate(a.DateOfBirth),
		Gender:             string(a.Gender),
		Nationality:        a.Nationality,
		DateBooked:         a.DateBooked.Format(time.RFC3339),
		IsHidden:           a.IsHidden,
	}
}

func toApplicationResponses(apps []domain.BookingApplication) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

func (h *ApplicationHandler) buildInput(c *gin.Context, req applicationRequest) (applications.ApplicationInput, bool) {
	input := applications.ApplicationInput{
		PackageID:          req.Package,
		FullName:           req.FullName,
		Email:              req.Email,
		NumberOfPassengers: req.NumberOfPassengers,
		PhoneNumber:        req.PhoneNumber,
		Gender:             req.Gender,
		Nationality:        req.Nationality,
	}

	if req.DateOfBirth != "" {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			verr := domain.NewValidationError()
			verr.Add("date_of_birth", "must be a date in YYYY-MM-DD format")
			respondError(c, verr)
			return input, false
		}
		input.DateOfBirth = dob
	}
	return input, true
}

func (h *ApplicationHandler) create(c *gin.Context) {
	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := h.buildInput(c, req)
	if !ok {
		return
	}

	app, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toApplicationResponse(*app))
}

func (h *ApplicationHandler) list(c *gin.Context) {
	apps, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toApplicationResponses(apps))
}

func (h *ApplicationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	app, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toApplicationResponse(*app))
}

func (h *ApplicationHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := h.buildInput(c, req)
	if !ok {
		return
	}

	app, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toApplicationResponse(*app))
}

func (h *ApplicationHandler) archive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking application archived successfully"})
}

func (h *ApplicationHandler) restore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking application restored successfully"})
}

func (h *ApplicationHandler) listArchived(c *gin.Context) {
	apps, err := h.service.ListArchived(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(apps), "results": toApplicationResponses(apps)})
}

func (h *ApplicationHandler) getArchived(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	app, err := h.service.GetArchived(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toApplicationResponse(*app))
}

func (h *ApplicationHandler) count(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
