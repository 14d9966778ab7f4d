package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/models"
	"tablebook/internal/services"
)

type RestaurantHandler struct {
	restaurants services.RestaurantService
}

func NewRestaurantHandler(restaurants services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

// @Summary      Список ресторанов
// @Tags         Restaurants
// @Produce      json
// @Success      200  {array}  models.Restaurant
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	restaurants, err := h.restaurants.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load restaurants"})
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// @Summary      Карточка ресторана
// @Tags         Restaurants
// @Produce      json
// @Param        id  path  int  true  "ID ресторана"
// @Success      200  {object}  models.Restaurant
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	rest, err := h.restaurants.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load restaurant"})
		return
	}
	c.JSON(http.StatusOK, rest)
}

type restaurantRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Address     string          `json:"address" binding:"required,max=500"`
	Description *string         `json:"description"`
	LayoutData  json.RawMessage `json:"layout_data"`
}

// @Summary      Создать ресторан (админ)
// @Tags         Restaurants
// @Accept       json
// @Produce      json
// @Param        restaurant  body      restaurantRequest  true  "Данные ресторана"
// @Success      201         {object}  models.Restaurant
// @Router       /restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	rest := &models.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		LayoutData:  req.LayoutData,
	}
	if err := h.restaurants.Create(rest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, rest)
}

// @Summary      Обновить ресторан (админ)
// @Tags         Restaurants
// @Accept       json
// @Produce      json
// @Param        id          path      int                true  "ID ресторана"
// @Param        restaurant  body      restaurantRequest  true  "Данные ресторана"
// @Success      200         {object}  map[string]interface{}
// @Router       /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	rest := &models.Restaurant{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		LayoutData:  req.LayoutData,
	}
	if err := h.restaurants.Update(rest); err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated successfully", "restaurant": rest})
}

// @Summary      Удалить ресторан со столами и бронями (админ)
// @Tags         Restaurants
// @Produce      json
// @Param        id  path  int  true  "ID ресторана"
// @Success      200  {object}  map[string]string
// @Router       /restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.restaurants.Delete(id); err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}
