package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/authz"
	"tablebook/internal/services"
)

// ManagerHandler — урезанный набор операций над клиентами для менеджеров.
type ManagerHandler struct {
	users services.UserService
}

func NewManagerHandler(users services.UserService) *ManagerHandler {
	return &ManagerHandler{users: users}
}

// @Summary      Клиенты (менеджер)
// @Tags         Manager
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /manager/users [get]
func (h *ManagerHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListByRole(authz.RoleUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Заблокировать клиента (менеджер)
// @Tags         Manager
// @Produce      json
// @Param        id  path  int  true  "ID пользователя"
// @Success      200  {object}  map[string]interface{}
// @Router       /manager/users/{id}/block [post]
func (h *ManagerHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// @Summary      Разблокировать клиента (менеджер)
// @Tags         Manager
// @Produce      json
// @Param        id  path  int  true  "ID пользователя"
// @Success      200  {object}  map[string]interface{}
// @Router       /manager/users/{id}/unblock [post]
func (h *ManagerHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *ManagerHandler) setBlocked(c *gin.Context, blocked bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	target, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	// Менеджер управляет только клиентами.
	if target.Role != authz.RoleUser {
		c.JSON(http.StatusForbidden, gin.H{"message": "Managers can only block clients"})
		return
	}
	user, err := h.users.SetBlocked(id, blocked)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	msg := "User unblocked successfully"
	if blocked {
		msg = "User blocked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "user": user})
}
