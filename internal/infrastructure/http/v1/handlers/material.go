package handlers

import (
	"github.com/gin-gonic/gin"

	"almacen/internal/domain/criteria"
	"almacen/internal/domain/material"
	"almacen/internal/infrastructure/http/v1/dto"
)

// MaterialHandler serves the raw materials catalog.
type MaterialHandler struct {
	*BaseHandler
	service *material.Service
}

// NewMaterialHandler creates a material handler.
func NewMaterialHandler(service *material.Service) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /materiaprima.
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), material.CreateInput{
		Translations: req.Names,
		Price:        req.Price,
		Units:        req.Units,
		Unit:         req.Unit,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// Get handles GET /materiaprima/:id. The locale query parameter selects
// the name language, falling back to the default locale.
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id, c.Query("locale"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToMaterialResponse(m))
}

// Translations handles GET /materiaprima/:id/translations.
func (h *MaterialHandler) Translations(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	translations, err := h.service.Translations(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.TranslationResponse, 0, len(translations))
	for _, t := range translations {
		out = append(out, dto.TranslationResponse{Locale: t.Locale, Name: t.Name})
	}
	h.OK(c, out)
}

// Search handles GET /materiaprima/search. Every criterion is optional;
// present criteria combine with AND. An empty page is a 200, not a 404.
func (h *MaterialHandler) Search(c *gin.Context) {
	sc, page, ok := h.parseCriteria(c)
	if !ok {
		return
	}

	result, err := h.service.Search(c.Request.Context(), sc, page)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.MaterialResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.ToMaterialResponse(&result.Items[i]))
	}
	h.OK(c, dto.PageResponse[dto.MaterialResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page.Number,
		PageSize:   result.Page.Size,
		TotalPages: result.TotalPages(),
	})
}

// Update handles PUT /materiaprima/:id.
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, material.UpdateInput{
		Translations: req.Names,
		Price:        req.Price,
		Units:        req.Units,
		Unit:         req.Unit,
		Version:      req.Version,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToMaterialResponse(updated))
}

// Delete handles DELETE /materiaprima/:id.
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// parseCriteria reads the criteria query parameters.
func (h *MaterialHandler) parseCriteria(c *gin.Context) (material.SearchCriteria, criteria.Page, bool) {
	var sc material.SearchCriteria
	var ok bool

	if sc.ID, ok = h.ParseInt64Query(c, "id"); !ok {
		return sc, criteria.Page{}, false
	}
	sc.Name = h.StringQuery(c, "nombre")
	if sc.PriceFrom, ok = h.ParseDecimalQuery(c, "precioDesde"); !ok {
		return sc, criteria.Page{}, false
	}
	if sc.PriceTo, ok = h.ParseDecimalQuery(c, "precioHasta"); !ok {
		return sc, criteria.Page{}, false
	}
	if sc.UnitsFrom, ok = h.ParseDecimalQuery(c, "unidadesDesde"); !ok {
		return sc, criteria.Page{}, false
	}
	if sc.UnitsTo, ok = h.ParseDecimalQuery(c, "unidadesHasta"); !ok {
		return sc, criteria.Page{}, false
	}
	sc.Locale = c.Query("locale")

	page := criteria.Page{
		Number: h.ParseIntQuery(c, "page", 1),
		Size:   h.ParseIntQuery(c, "pageSize", criteria.DefaultPageSize),
	}
	return sc, page, true
}
