package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tablebook/internal/authz"
	"tablebook/internal/repositories"
	"tablebook/internal/services"
)

type ReservationHandler struct {
	reservations services.ReservationService
}

func NewReservationHandler(reservations services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type foodLineRequest struct {
	FoodID   int64 `json:"food_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"omitempty,min=1,max=20"`
}

type createReservationRequest struct {
	TableID    int64             `json:"table_id" binding:"required"`
	DateTime   time.Time         `json:"date_time" binding:"required"`
	PriceCents int64             `json:"price_cents" binding:"omitempty,min=0"`
	Foods      []foodLineRequest `json:"foods" binding:"omitempty,dive"`
}

// @Summary      Создать бронь
// @Description  Проверяет занятость стола в окне ±2 часа; можно заказать блюда
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Param        reservation  body      createReservationRequest  true  "Бронь"
// @Success      201          {object}  models.Reservation
// @Failure      409          {object}  map[string]string
// @Router       /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}

	foods := make([]services.FoodLine, 0, len(req.Foods))
	for _, f := range req.Foods {
		foods = append(foods, services.FoodLine{FoodID: f.FoodID, Quantity: f.Quantity})
	}

	res, err := h.reservations.Create(services.CreateReservationInput{
		UserID:     userID,
		TableID:    req.TableID,
		DateTime:   req.DateTime,
		PriceCents: req.PriceCents,
		Foods:      foods,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPastDateTime):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"date_time": "Must be in the future."}})
		case errors.Is(err, services.ErrTableNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"table_id": "Table does not exist."}})
		case errors.Is(err, services.ErrFoodNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"foods": "Unknown food in order."}})
		case errors.Is(err, services.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{"message": "Стол уже забронирован на это время или соседнее время"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reservation"})
		}
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary      Список броней
// @Description  Пользователь видит свои, персонал — все; фильтры restaurant_id и date
// @Tags         Reservations
// @Produce      json
// @Param        restaurant_id  query  int     false  "Фильтр по ресторану"
// @Param        date           query  string  false  "Фильтр по дате YYYY-MM-DD"
// @Success      200  {array}  models.Reservation
// @Router       /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	filter := repositories.ReservationFilter{
		Date: c.Query("date"),
	}
	if v := c.Query("restaurant_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.RestaurantID = id
		}
	}
	if !authz.IsStaff(getRole(c)) {
		filter.UserID = userID
	}

	reservations, err := h.reservations.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservations"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// @Summary      Одна бронь
// @Tags         Reservations
// @Produce      json
// @Param        id  path  int  true  "ID брони"
// @Success      200  {object}  models.Reservation
// @Failure      404  {object}  map[string]string
// @Router       /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *gin.Context) {
	userID, _ := getUserID(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.reservations.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReservationMissing) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservation"})
		return
	}
	if res.UserID != userID && !authz.IsStaff(getRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, res)
}

type updateReservationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed canceled"`
}

// @Summary      Сменить статус брони (менеджер/админ)
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Param        id      path      int                       true  "ID брони"
// @Param        status  body      updateReservationRequest  true  "Новый статус"
// @Success      200     {object}  map[string]interface{}
// @Router       /reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	res, err := h.reservations.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrReservationMissing) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated successfully", "reservation": res})
}

// @Summary      Удалить бронь
// @Tags         Reservations
// @Produce      json
// @Param        id  path  int  true  "ID брони"
// @Success      200  {object}  map[string]string
// @Router       /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	userID, _ := getUserID(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.reservations.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReservationMissing) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservation"})
		return
	}
	if res.UserID != userID && !authz.IsStaff(getRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	if err := h.reservations.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

type checkAvailabilityRequest struct {
	TableID       int64     `json:"table_id" binding:"required"`
	DateTime      time.Time `json:"date_time" binding:"required"`
	ReservationID int64     `json:"reservation_id"`
}

// @Summary      Проверить доступность стола
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Param        check  body      checkAvailabilityRequest  true  "Стол и время"
// @Success      200    {object}  map[string]interface{}
// @Router       /reservations/check-availability [post]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	var req checkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	available, existing, err := h.reservations.CheckAvailability(req.TableID, req.DateTime, req.ReservationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available":            available,
		"existing_reservation": existing,
	})
}
