package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/token"
)

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.users[email], nil
}

func testTokens() *token.Manager {
	return token.NewManager("test-secret", time.Hour)
}

func TestAuthService_Signup(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testTokens())

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "test@example.com", Password: "password123",
		FirstName: "John", LastName: "Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.Equal(t, model.RoleUser, resp.User.Role)

	// The issued token carries the email as subject.
	subject, err := testTokens().ExtractSubject(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", subject)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testTokens())

	repo.users["test@example.com"] = &model.User{Email: "test@example.com"}

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "test@example.com", Password: "password123",
		FirstName: "John", LastName: "Doe",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Len(t, repo.users, 1, "no new user on duplicate signup")
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testTokens())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.users["test@example.com"] = &model.User{
		ID: uuid.New(), Email: "test@example.com", Password: string(hashed), Role: model.RoleUser,
	}

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testTokens())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.users["test@example.com"] = &model.User{
		ID: uuid.New(), Email: "test@example.com", Password: string(hashed),
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "test@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testTokens())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "missing@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
