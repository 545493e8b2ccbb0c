package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/criteria"
	"almacen/internal/domain/material"
	"almacen/pkg/logger"
)

const exportSheet = "Inventario"

// ExportHandler produces inventory snapshots as spreadsheets.
type ExportHandler struct {
	*BaseHandler
	materials *material.Service
}

// NewExportHandler creates an export handler.
func NewExportHandler(materials *material.Service) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(),
		materials:   materials,
	}
}

// Materials handles GET /materiaprima/export. Streams the full raw
// material inventory as an .xlsx file, names localized via ?locale=.
func (h *ExportHandler) Materials(c *gin.Context) {
	ctx := c.Request.Context()
	locale := c.Query("locale")

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error(ctx, "close spreadsheet", "error", err)
		}
	}()

	sheet, err := f.NewSheet(exportSheet)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	f.SetActiveSheet(sheet)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Nombre", "Precio", "Unidades", "Unidad de medida"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			h.Error(c, apperror.NewInternal(err))
			return
		}
	}

	row := 2
	page := criteria.Page{Number: 1, Size: criteria.MaxPageSize}
	for {
		result, err := h.materials.Search(ctx, material.SearchCriteria{Locale: locale}, page)
		if err != nil {
			h.Error(c, err)
			return
		}

		for _, m := range result.Items {
			values := []any{m.ID, m.Name, m.Price.String(), m.Units.String(), m.Unit}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(exportSheet, cell, v); err != nil {
					h.Error(c, apperror.NewInternal(err))
					return
				}
			}
			row++
		}

		if page.Number >= result.TotalPages() {
			break
		}
		page.Number++
	}

	filename := fmt.Sprintf("inventario-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		logger.Error(ctx, "write spreadsheet", "error", err)
	}
}
