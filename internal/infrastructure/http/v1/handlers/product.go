package handlers

import (
	"github.com/gin-gonic/gin"

	"almacen/internal/domain/bom"
	"almacen/internal/domain/criteria"
	"almacen/internal/domain/product"
	"almacen/internal/domain/stock"
	"almacen/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the products catalog and stock adjustments.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
	recipes *bom.Service
	engine  *stock.Engine
}

// NewProductHandler creates a product handler.
func NewProductHandler(service *product.Service, recipes *bom.Service, engine *stock.Engine) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		recipes:     recipes,
		engine:      engine,
	}
}

// Create handles POST /producto. Stock always starts at zero.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), product.CreateInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// Get handles GET /producto/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToProductResponse(p))
}

// Search handles GET /producto/search.
func (h *ProductHandler) Search(c *gin.Context) {
	var sc product.SearchCriteria
	var ok bool

	if sc.ID, ok = h.ParseInt64Query(c, "id"); !ok {
		return
	}
	sc.Name = h.StringQuery(c, "nombre")
	if sc.PriceFrom, ok = h.ParseDecimalQuery(c, "precioDesde"); !ok {
		return
	}
	if sc.PriceTo, ok = h.ParseDecimalQuery(c, "precioHasta"); !ok {
		return
	}
	if sc.UnitsFrom, ok = h.ParseInt64Query(c, "unidadesDesde"); !ok {
		return
	}
	if sc.UnitsTo, ok = h.ParseInt64Query(c, "unidadesHasta"); !ok {
		return
	}

	page := criteria.Page{
		Number: h.ParseIntQuery(c, "page", 1),
		Size:   h.ParseIntQuery(c, "pageSize", criteria.DefaultPageSize),
	}

	result, err := h.service.Search(c.Request.Context(), sc, page)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ProductResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.ToProductResponse(&result.Items[i]))
	}
	h.OK(c, dto.PageResponse[dto.ProductResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page.Number,
		PageSize:   result.Page.Size,
		TotalPages: result.TotalPages(),
	})
}

// Update handles PUT /producto/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, product.UpdateInput{
		Name:    req.Name,
		Price:   req.Price,
		Version: req.Version,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToProductResponse(updated))
}

// UpdateStock handles PUT /producto/update-stock/:id.
// A positive delta produces units and consumes recipe materials; a
// negative delta withdraws units and returns materials. On a shortage
// the whole adjustment is refused and every shortfall is reported.
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.engine.Adjust(c.Request.Context(), stock.AdjustmentRequest{
		ProductID:     id,
		Delta:         req.Delta,
		Locale:        req.Locale,
		SkipMaterials: req.SkipMaterials,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToStockAdjustmentResponse(result))
}

// Delete handles DELETE /producto/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
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

// Recipe handles GET /producto/:id/materials.
func (h *ProductHandler) Recipe(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.recipes.Recipe(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.RecipeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.RecipeEntryResponse{
			ProductID:  e.ProductID,
			MaterialID: e.MaterialID,
			PerUnitQty: e.PerUnitQty,
		})
	}
	h.OK(c, out)
}

// SetRecipeEntry handles PUT /producto/:id/materials.
func (h *ProductHandler) SetRecipeEntry(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecipeEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.recipes.Set(c.Request.Context(), id, bom.SetInput{
		MaterialID: req.MaterialID,
		PerUnitQty: req.PerUnitQty,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.RecipeEntryResponse{
		ProductID:  entry.ProductID,
		MaterialID: entry.MaterialID,
		PerUnitQty: entry.PerUnitQty,
	})
}

// RemoveRecipeEntry handles DELETE /producto/:id/materials/:materialId.
func (h *ProductHandler) RemoveRecipeEntry(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := h.ParseIDParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.recipes.Remove(c.Request.Context(), id, materialID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
