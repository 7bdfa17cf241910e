package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"journal/internal/config"
	"journal/internal/mail"
	"journal/internal/middleware"
	"journal/internal/models"
	"journal/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, keyword string) ([]*models.Post, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id uint, title, content string) error {
	args := m.Called(ctx, id, title, content)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockMailer is a mock of the mail.Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// newTestServer builds a Server on mocks and an in-memory session store,
// with the full middleware and route table installed.
func newTestServer(t *testing.T, postRepo *MockPostRepository, userRepo *MockUserRepository, mailer *MockMailer) (*Server, *fiber.App) {
	t.Helper()

	s := &Server{
		config: &config.Config{
			Port:          "3000",
			SessionSecret: "test-secret",
			Env:           "test",
		},
		promMiddleware: middleware.InitMetrics("journal"),
		postRepo:       postRepo,
		userRepo:       userRepo,
		sessions:       session.NewStore(nil, time.Hour),
		mailer:         mailer,
	}
	return s, s.BuildApp()
}

// loginAs creates a session for the given user ID and returns the cookie to
// attach to requests.
func loginAs(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.sessions.Create(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return &http.Cookie{Name: sessionCookie, Value: token}
}
