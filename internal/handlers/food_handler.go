package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/models"
	"tablebook/internal/services"
)

type FoodHandler struct {
	foods services.FoodService
}

func NewFoodHandler(foods services.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

type foodRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	Calories    *int    `json:"calories" binding:"omitempty,min=0"`
	Ingredients *string `json:"ingredients"`
	PriceCents  int64   `json:"price_cents" binding:"required,min=0"`
}

// @Summary      Меню
// @Tags         Foods
// @Produce      json
// @Success      200  {array}  models.Food
// @Router       /foods [get]
func (h *FoodHandler) List(c *gin.Context) {
	foods, err := h.foods.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load foods"})
		return
	}
	c.JSON(http.StatusOK, foods)
}

// @Summary      Одно блюдо
// @Tags         Foods
// @Produce      json
// @Param        id  path  int  true  "ID блюда"
// @Success      200  {object}  models.Food
// @Failure      404  {object}  map[string]string
// @Router       /foods/{id} [get]
func (h *FoodHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	food, err := h.foods.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load food"})
		return
	}
	c.JSON(http.StatusOK, food)
}

// @Summary      Добавить блюдо (менеджер/админ)
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        food  body      foodRequest  true  "Блюдо"
// @Success      201   {object}  models.Food
// @Router       /foods [post]
func (h *FoodHandler) Create(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	food := &models.Food{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Calories:    req.Calories,
		Ingredients: req.Ingredients,
		PriceCents:  req.PriceCents,
	}
	if err := h.foods.Create(food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food"})
		return
	}
	c.JSON(http.StatusCreated, food)
}

// @Summary      Обновить блюдо (менеджер/админ)
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "ID блюда"
// @Param        food  body      foodRequest  true  "Блюдо"
// @Success      200   {object}  models.Food
// @Router       /foods/{id} [put]
func (h *FoodHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	food, err := h.foods.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load food"})
		return
	}
	food.Name = req.Name
	food.ImageURL = req.ImageURL
	food.Calories = req.Calories
	food.Ingredients = req.Ingredients
	food.PriceCents = req.PriceCents
	if err := h.foods.Update(food); err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food"})
		return
	}
	c.JSON(http.StatusOK, food)
}

// @Summary      Удалить блюдо (менеджер/админ)
// @Tags         Foods
// @Produce      json
// @Param        id  path  int  true  "ID блюда"
// @Success      200  {object}  map[string]string
// @Router       /foods/{id} [delete]
func (h *FoodHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.foods.Delete(id); err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully"})
}
