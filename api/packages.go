package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/service/packages"
)

type PackageHandler struct {
	service packages.PackageUseCase
}

type packageRequest struct {
	Name          string  `json:"name"`
	Destination   string  `json:"destination"`
	Origin        string  `json:"origin"`
	Price         float64 `json:"price"`
	Airline       string  `json:"airline"`
	FlightMode    string  `json:"flight_mode"`
	FlightClass   string  `json:"flight_class"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
}

type packageResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Destination   string  `json:"destination"`
	Origin        string  `json:"origin"`
	Price         float64 `json:"price"`
	Airline       string  `json:"airline"`
	FlightMode    string  `json:"flight_mode"`
	FlightClass   string  `json:"flight_class"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	DateCreated   string  `json:"date_created"`
	DateUpdated   string  `json:"date_updated"`
	IsHidden      bool    `json:"is_hidden"`
}

func NewPackageHandler(service packages.PackageUseCase) *PackageHandler {
	return &PackageHandler{service: service}
}

func (h *PackageHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/flight/package/list", h.list)
	public.GET("/flight/package/list/:id", h.get)
	public.GET("/flight/packages/search", h.search)
	public.GET("/flight/packages/count", h.count)

	admin.POST("/flight/package", h.create)
	admin.PUT("/flight/package/update/:id", h.update)
	admin.PATCH("/flight/package/update/:id", h.update)
	admin.DELETE("/flight/package/:id", h.archive)
	admin.GET("/flight/package/archive", h.listArchived)
	admin.GET("/flight/package/archive/:id", h.getArchived)
	admin.PATCH("/flight/package/archive/:id", h.restore)
}

func toPackageResponse(p domain.FlightPackage) packageResponse {
	resp := packageResponse{
		ID:            p.ID,
		Name:          p.Name,
		Destination:   p.Destination,
		Origin:        p.Origin,
		Price:         p.Price,
		Airline:       p.Airline,
		FlightMode:    string(p.FlightMode),
		FlightClass:   string(p.FlightClass),
		DepartureDate: formatDate(p.DepartureDate),
		DateCreated:   p.DateCreated.Format(time.RFC3339),
		DateUpdated:   p.DateUpdated.Format(time.RFC3339),
		IsHidden:      p.IsHidden,
	}
	if p.ReturnDate != nil {
		rd := formatDate(*p.ReturnDate)
		resp.ReturnDate = &rd
	}
	return resp
}

func toPackageResponses(pkgs []domain.FlightPackage) []packageResponse {
	out := make([]packageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, toPackageResponse(p))
	}
	return out
}

func (h *PackageHandler) buildInput(c *gin.Context, req packageRequest) (packages.PackageInput, bool) {
	input := packages.PackageInput{
		Name:        req.Name,
		Destination: req.Destination,
		Origin:      req.Origin,
		Price:       req.Price,
		Airline:     req.Airline,
		FlightMode:  req.FlightMode,
		FlightClass: req.FlightClass,
	}

	verr := domain.NewValidationError()
	if req.DepartureDate != "" {
		departure, err := parseDate(req.DepartureDate)
		if err != nil {
			verr.Add("departure_date", "must be a date in YYYY-MM-DD format")
		}
		input.DepartureDate = departure
	}
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		ret, err := parseDate(*req.ReturnDate)
		if err != nil {
			verr.Add("return_date", "must be a date in YYYY-MM-DD format")
		} else {
			input.ReturnDate = &ret
		}
	}
	if !verr.Empty() {
		respondError(c, verr)
		return input, false
	}
	return input, true
}

func (h *PackageHandler) create(c *gin.Context) {
	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := h.buildInput(c, req)
	if !ok {
		return
	}

	pkg, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPackageResponse(*pkg))
}

func (h *PackageHandler) list(c *gin.Context) {
	pkgs, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponses(pkgs))
}

func (h *PackageHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	pkg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponse(*pkg))
}

func (h *PackageHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := h.buildInput(c, req)
	if !ok {
		return
	}

	pkg, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponse(*pkg))
}

func (h *PackageHandler) archive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight package archived successfully"})
}

func (h *PackageHandler) restore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight package restored successfully"})
}

func (h *PackageHandler) listArchived(c *gin.Context) {
	pkgs, err := h.service.ListArchived(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(pkgs), "results": toPackageResponses(pkgs)})
}

func (h *PackageHandler) getArchived(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	pkg, err := h.service.GetArchived(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponse(*pkg))
}

func (h *PackageHandler) search(c *gin.Context) {
	criteria := domain.PackageSearch{
		Destination: c.Query("destination"),
		Origin:      c.Query("origin"),
		Airline:     c.Query("airline"),
		FlightMode:  c.Query("flight_mode"),
		FlightClass: c.Query("flight_class"),
	}

	verr := domain.NewValidationError()
	if raw := c.Query("departure_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			verr.Add("departure_date", "must be a date in YYYY-MM-DD format")
		} else {
			criteria.DepartureDate = &d
		}
	}
	if raw := c.Query("return_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			verr.Add("return_date", "must be a date in YYYY-MM-DD format")
		} else {
			criteria.ReturnDate = &d
		}
	}
	if !verr.Empty() {
		respondError(c, verr)
		return
	}

	pkgs, err := h.service.Search(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponses(pkgs))
}

func (h *PackageHandler) count(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
