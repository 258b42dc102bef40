package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	propapp "github.com/oksasatya/property-marketplace/internal/application"
	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/pkg/response"
	"github.com/oksasatya/property-marketplace/pkg/validation"
)

type PropertyHandler struct {
	Svc    *propapp.PropertyService
	Logger *logrus.Logger
}

func NewPropertyHandler(svc *propapp.PropertyService, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{Svc: svc, Logger: logger}
}

type createPropertyRequest struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

func propertyView(p *entity.Property) gin.H {
	return gin.H{
		"id":           p.ID,
		"name":         p.Name,
		"image":        p.Image,
		"location":     gin.H{"id": p.Location.ID, "name": p.Location.Name},
		"price":        p.Price,
		"date_created": p.DateCreated,
		"active":       p.Active,
		"available":    p.Available,
	}
}

// Create POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	// A missing or malformed location id flows through as uuid.Nil so the
	// validation engine reports it with its own error, not a binding one.
	location := uuid.Nil
	if req.Location != "" {
		if parsed, err := uuid.Parse(req.Location); err == nil {
			location = parsed
		}
	}

	p, err := h.Svc.Save(c.Request.Context(), propapp.PropertyRegistration{
		Name:     req.Name,
		Image:    req.Image,
		Location: location,
		Price:    req.Price,
	})
	if err != nil {
		response.DomainError(c, err)
		return
	}

	h.Logger.WithField("property_id", p.ID).Info("property listed")
	response.Success(c, http.StatusCreated, propertyView(p), "property created", nil)
}

// List GET /api/properties?min_price=&max_price=&page=
func (h *PropertyHandler) List(c *gin.Context) {
	var minPrice, maxPrice *float64
	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid min_price", nil)
			return
		}
		minPrice = &f
	}
	if v := c.Query("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid max_price", nil)
			return
		}
		maxPrice = &f
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

	props, total, err := h.Svc.Find(c.Request.Context(), minPrice, maxPrice, page)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(props))
	for i := range props {
		out = append(out, propertyView(&props[i]))
	}
	response.Success(c, http.StatusOK, out, "properties", gin.H{"total": total, "page": page})
}

// Search GET /api/properties/search?q=&size=
func (h *PropertyHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// UploadImage POST /api/properties/:id/image (multipart field "image")
func (h *PropertyHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadImage(c.Request.Context(), id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image": url}, "image uploaded", nil)
}

// DeleteStale DELETE /api/admin/properties/stale
func (h *PropertyHandler) DeleteStale(c *gin.Context) {
	n, err := h.Svc.DeleteStale(c.Request.Context())
	if err != nil {
		response.DomainError(c, err)
		return
	}
	h.Logger.WithField("deleted", n).Info("stale properties removed")
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, "stale properties removed", nil)
}
