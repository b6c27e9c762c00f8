package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devconnect/internal/domain/user"
	"devconnect/internal/pkg/jwt"
)

type memUserRepo struct {
	byEmail map[string]user.User
	creates int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]user.User)}
}

func (m *memUserRepo) Create(_ context.Context, u user.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return errors.New("unique violation")
	}
	m.byEmail[u.Email] = u
	m.creates++
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func newTestService(repo user.Repository) *Service {
	return NewService(repo, jwt.NewHMACService("test-secret", time.Hour))
}

func TestRegister_IssuesTokenAndHashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)

	token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jordan Dev",
		Email:    "Jordan@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	u, ok := repo.byEmail["jordan@example.com"]
	if !ok {
		t.Fatalf("expected email to be normalized to lowercase")
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Fatalf("plaintext password must never be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !strings.HasPrefix(u.Avatar, "https://www.gravatar.com/avatar/") {
		t.Fatalf("expected derived avatar, got %q", u.Avatar)
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)

	in := RegisterInput{Name: "Jordan", Email: "jordan@example.com", Password: "hunter22"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one user created, got %d", repo.creates)
	}
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Jordan", Email: "jordan@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "jordan@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "hunter22"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "jordan@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
}

func TestCurrentUser_StripsPasswordHash(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Jordan", Email: "jordan@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	stored := repo.byEmail["jordan@example.com"]

	u, err := svc.CurrentUser(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("credential hash must not leave the usecase")
	}
	if u.Name != "Jordan" {
		t.Fatalf("unexpected user: %+v", u)
	}
}
