package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tablebook/internal/authz"
	"tablebook/internal/models"
	"tablebook/internal/services"
)

type fakeUserService struct {
	users map[int64]*models.User
}

func (f *fakeUserService) Register(req models.RegisterRequest) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) Authenticate(email, password string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) GetByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserService) ListByRole(role string) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserService) ListAll() ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserService) SetBlocked(id int64, blocked bool) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	if u.Role == authz.RoleAdmin {
		return nil, services.ErrProtectedAdmin
	}
	u.IsBlocked = blocked
	return u, nil
}

func (f *fakeUserService) Delete(id int64) error {
	u, ok := f.users[id]
	if !ok {
		return services.ErrUserNotFound
	}
	if u.Role == authz.RoleAdmin {
		return services.ErrProtectedAdmin
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserService) CreateManager(req models.RegisterRequest) (*models.User, error) {
	return nil, nil
}

func newAdminRouter(svc services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(svc)
	r := gin.New()
	admin := r.Group("/admin")
	{
		admin.GET("/managers", h.ListManagers)
		admin.POST("/managers/:id/block", h.BlockUser)
		admin.POST("/managers/:id/unblock", h.UnblockUser)
		admin.DELETE("/managers/:id", h.DeleteUser)
	}
	return r
}

func adminDo(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestManagerBlockUnblock(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{
		3: {ID: 3, Role: authz.RoleManager},
	}}
	r := newAdminRouter(svc)

	w := adminDo(r, http.MethodPost, "/admin/managers/3/block")
	if w.Code != http.StatusOK {
		t.Fatalf("block: code = %d, want 200", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "User blocked successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if !svc.users[3].IsBlocked {
		t.Error("менеджер не заблокирован")
	}

	if w := adminDo(r, http.MethodPost, "/admin/managers/3/unblock"); w.Code != http.StatusOK {
		t.Errorf("unblock: code = %d, want 200", w.Code)
	}
	if svc.users[3].IsBlocked {
		t.Error("менеджер не разблокирован")
	}
}

func TestManagerDelete(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{
		3: {ID: 3, Role: authz.RoleManager},
	}}
	r := newAdminRouter(svc)

	if w := adminDo(r, http.MethodDelete, "/admin/managers/3"); w.Code != http.StatusOK {
		t.Fatalf("delete: code = %d, want 200", w.Code)
	}
	if _, ok := svc.users[3]; ok {
		t.Error("менеджер не удалён")
	}

	if w := adminDo(r, http.MethodDelete, "/admin/managers/3"); w.Code != http.StatusNotFound {
		t.Errorf("повторное удаление: code = %d, want 404", w.Code)
	}
}

// Админа нельзя ни заблокировать, ни удалить через эти руты.
func TestManagerRoutesProtectAdmin(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{
		1: {ID: 1, Role: authz.RoleAdmin},
	}}
	r := newAdminRouter(svc)

	if w := adminDo(r, http.MethodPost, "/admin/managers/1/block"); w.Code != http.StatusForbidden {
		t.Errorf("block admin: code = %d, want 403", w.Code)
	}
	if w := adminDo(r, http.MethodDelete, "/admin/managers/1"); w.Code != http.StatusForbidden {
		t.Errorf("delete admin: code = %d, want 403", w.Code)
	}
}
