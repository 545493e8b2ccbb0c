package handlers

import (
	"github.com/gin-gonic/gin"

	"almacen/internal/domain/criteria"
	"almacen/internal/domain/user"
	"almacen/internal/infrastructure/http/v1/dto"
)

// UserHandler serves account management.
type UserHandler struct {
	*BaseHandler
	service *user.Service
}

// NewUserHandler creates a user handler.
func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Register handles POST /usuario.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		RoleID:   req.RoleID,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// Get handles GET /usuario/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToUserResponse(u))
}

// Search handles GET /usuario.
func (h *UserHandler) Search(c *gin.Context) {
	var sc user.SearchCriteria
	var ok bool

	if sc.ID, ok = h.ParseInt64Query(c, "id"); !ok {
		return
	}
	sc.Username = h.StringQuery(c, "username")
	sc.FullName = h.StringQuery(c, "nombre")
	sc.Email = h.StringQuery(c, "correo")
	if sc.RoleID, ok = h.ParseInt64Query(c, "id_rol"); !ok {
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

	items := make([]dto.UserResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.ToUserResponse(&result.Items[i]))
	}
	h.OK(c, dto.PageResponse[dto.UserResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page.Number,
		PageSize:   result.Page.Size,
		TotalPages: result.TotalPages(),
	})
}

// Update handles PUT /usuario/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, user.UpdateInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		RoleID:   req.RoleID,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToUserResponse(updated))
}

// Delete handles DELETE /usuario/:id.
func (h *UserHandler) Delete(c *gin.Context) {
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
