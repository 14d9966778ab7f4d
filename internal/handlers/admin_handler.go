package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/authz"
	"tablebook/internal/models"
	"tablebook/internal/services"
)

type AdminHandler struct {
	users services.UserService
}

func NewAdminHandler(users services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// @Summary      Все пользователи (админ)
// @Tags         Admin
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Список менеджеров (админ)
// @Tags         Admin
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /admin/managers [get]
func (h *AdminHandler) ListManagers(c *gin.Context) {
	managers, err := h.users.ListByRole(authz.RoleManager)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load managers"})
		return
	}
	c.JSON(http.StatusOK, managers)
}

// @Summary      Создать менеджера (админ)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        manager  body      models.RegisterRequest  true  "Менеджер"
// @Success      201      {object}  models.User
// @Router       /admin/managers [post]
func (h *AdminHandler) CreateManager(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	manager, err := h.users.CreateManager(req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"email": "The email has already been taken."}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create manager"})
		return
	}
	c.JSON(http.StatusCreated, manager)
}

// @Summary      Заблокировать пользователя (админ)
// @Tags         Admin
// @Produce      json
// @Param        id  path  int  true  "ID пользователя"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users/{id}/block [post]
// @Router       /admin/managers/{id}/block [post]
func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// @Summary      Разблокировать пользователя (админ)
// @Tags         Admin
// @Produce      json
// @Param        id  path  int  true  "ID пользователя"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users/{id}/unblock [post]
// @Router       /admin/managers/{id}/unblock [post]
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *gin.Context, blocked bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	user, err := h.users.SetBlocked(id, blocked)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrProtectedAdmin):
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot block an admin"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}
	msg := "User unblocked successfully"
	if blocked {
		msg = "User blocked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "user": user})
}

// @Summary      Удалить пользователя (админ)
// @Tags         Admin
// @Produce      json
// @Param        id  path  int  true  "ID пользователя"
// @Success      200  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
// @Router       /admin/managers/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.users.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrProtectedAdmin):
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot delete an admin"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
