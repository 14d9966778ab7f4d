package services

import (
	"errors"
	"testing"

	"tablebook/internal/authz"
	"tablebook/internal/models"
)

type memoryUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: map[int64]*models.User{}}
}

func (r *memoryUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) ListByRole(role string) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) ListAll() ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryUserRepo) SetBlocked(id int64, blocked bool) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("unknown user")
	}
	u.IsBlocked = blocked
	return nil
}

func (r *memoryUserRepo) Delete(id int64) error {
	delete(r.users, id)
	return nil
}

func newTestUserService() (UserService, *memoryUserRepo) {
	repo := newMemoryUserRepo()
	return NewUserService(repo, NewAuthService("test-secret")), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.Register(models.RegisterRequest{
		Name:     "  Иван ",
		Email:    "Ivan@Example.COM",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ivan@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.Name != "Иван" {
		t.Errorf("name = %q, want trimmed", user.Name)
	}
	if user.Role != authz.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Error("password must be stored as bcrypt hash")
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	svc, _ := newTestUserService()

	req := models.RegisterRequest{Name: "A", Email: "a@b.c", Password: "password123"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// регистр письма не спасает от дубликата
	req.Email = "A@B.C"
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newTestUserService()

	if _, err := svc.Register(models.RegisterRequest{Name: "A", Email: "a@b.c", Password: "password123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Authenticate("a@b.c", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Email != "a@b.c" {
		t.Errorf("unexpected user %q", user.Email)
	}

	if _, err := svc.Authenticate("a@b.c", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate("nobody@b.c", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}

	if err := repo.SetBlocked(user.ID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate("a@b.c", "password123"); !errors.Is(err, ErrUserBlocked) {
		t.Errorf("blocked user: err = %v, want ErrUserBlocked", err)
	}
}

func TestCreateManager(t *testing.T) {
	svc, _ := newTestUserService()

	m, err := svc.CreateManager(models.RegisterRequest{Name: "M", Email: "m@b.c", Password: "password123"})
	if err != nil {
		t.Fatalf("CreateManager: %v", err)
	}
	if m.Role != authz.RoleManager {
		t.Errorf("role = %q, want manager", m.Role)
	}
}

func TestSetBlockedProtectsAdmin(t *testing.T) {
	svc, repo := newTestUserService()

	admin := &models.User{Name: "Root", Email: "root@b.c", Role: authz.RoleAdmin}
	if err := repo.Create(admin); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SetBlocked(admin.ID, true); !errors.Is(err, ErrProtectedAdmin) {
		t.Errorf("block admin: err = %v, want ErrProtectedAdmin", err)
	}
	if err := svc.Delete(admin.ID); !errors.Is(err, ErrProtectedAdmin) {
		t.Errorf("delete admin: err = %v, want ErrProtectedAdmin", err)
	}

	if _, err := svc.SetBlocked(999, true); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: err = %v, want ErrUserNotFound", err)
	}
}

func TestSetBlockedRoundTrip(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.Register(models.RegisterRequest{Name: "A", Email: "a@b.c", Password: "password123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	blocked, err := svc.SetBlocked(user.ID, true)
	if err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if !blocked.IsBlocked {
		t.Error("user must be blocked")
	}

	unblocked, err := svc.SetBlocked(user.ID, false)
	if err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if unblocked.IsBlocked {
		t.Error("user must be unblocked")
	}
}
