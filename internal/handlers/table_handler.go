package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/models"
	"tablebook/internal/services"
)

type TableHandler struct {
	tables services.TableService
}

func NewTableHandler(tables services.TableService) *TableHandler {
	return &TableHandler{tables: tables}
}

// @Summary      Столы ресторана
// @Tags         Tables
// @Produce      json
// @Param        id  path  int  true  "ID ресторана"
// @Success      200  {array}  models.Table
// @Router       /restaurants/{id}/tables [get]
func (h *TableHandler) ListByRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tables, err := h.tables.ListByRestaurant(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tables"})
		return
	}
	c.JSON(http.StatusOK, tables)
}

type createTableRequest struct {
	Number int `json:"number" binding:"required,min=1"`
	Seats  int `json:"seats" binding:"required,min=1,max=20"`
}

// @Summary      Создать стол (админ)
// @Tags         Tables
// @Accept       json
// @Produce      json
// @Param        id     path      int                 true  "ID ресторана"
// @Param        table  body      createTableRequest  true  "Параметры стола"
// @Success      201    {object}  models.Table
// @Failure      409    {object}  map[string]string
// @Router       /restaurants/{id}/tables [post]
func (h *TableHandler) Create(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	table := &models.Table{
		RestaurantID: restaurantID,
		Number:       req.Number,
		Seats:        req.Seats,
	}
	if err := h.tables.Create(table); err != nil {
		switch {
		case errors.Is(err, services.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		case errors.Is(err, services.ErrTableNumberTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Table with this number already exists in this restaurant."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create table"})
		}
		return
	}
	c.JSON(http.StatusCreated, table)
}

type updateTableRequest struct {
	Number *int `json:"number" binding:"omitempty,min=1"`
	Seats  *int `json:"seats" binding:"omitempty,min=1,max=20"`
}

// @Summary      Обновить стол (админ)
// @Tags         Tables
// @Accept       json
// @Produce      json
// @Param        id     path      int                 true  "ID стола"
// @Param        table  body      updateTableRequest  true  "Изменения"
// @Success      200    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]string
// @Router       /tables/{id} [put]
func (h *TableHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	table, err := h.tables.Update(id, req.Number, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Table not found"})
		case errors.Is(err, services.ErrTableNumberTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Table with this number already exists in this restaurant."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update table"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table updated successfully", "table": table})
}

// @Summary      Удалить стол с бронями (админ)
// @Tags         Tables
// @Produce      json
// @Param        id  path  int  true  "ID стола"
// @Success      200  {object}  map[string]string
// @Router       /tables/{id} [delete]
func (h *TableHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.tables.Delete(id); err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Table not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
