package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/grocery-backend/internal/cfg"
	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	nextID int64
	users  map[string]*domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]*domain.User)}
}

func (s *userRepoStub) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := s.users[user.Username]; ok {
		return nil, e.ErrUsernameTaken
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.Username] = user
	return user, nil
}

func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, e.ErrNotFound
	}
	return user, nil
}

func (s *userRepoStub) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, e.ErrNotFound
}

type sessionRepoStub struct {
	sessions map[string]int64
}

func newSessionRepoStub() *sessionRepoStub {
	return &sessionRepoStub{sessions: make(map[string]int64)}
}

func (s *sessionRepoStub) Set(_ context.Context, token string, userID int64) error {
	s.sessions[token] = userID
	return nil
}

func (s *sessionRepoStub) Get(_ context.Context, token string) (int64, error) {
	userID, ok := s.sessions[token]
	if !ok {
		return 0, e.ErrNotFound
	}
	return userID, nil
}

func (s *sessionRepoStub) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newAuthFixture() (*AuthUseCase, *userRepoStub, *sessionRepoStub) {
	userRepo := newUserRepoStub()
	sessionRepo := newSessionRepoStub()
	seed := &cfg.SeedCfg{AdminPassword: "admin123", CustomerPassword: "custom123"}
	return NewAuthUC(userRepo, sessionRepo, seed, nopLogger{}), userRepo, sessionRepo
}

func TestRegister_OpensSession(t *testing.T) {
	uc, userRepo, sessionRepo := newAuthFixture()

	res, err := uc.Register(context.Background(), &RegisterReq{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleCustomer, res.Role)

	// Пароль хранится только в виде bcrypt-хеша.
	stored := userRepo.users["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.PasswordHash)

	userID, err := sessionRepo.Get(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), &RegisterReq{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), &RegisterReq{Username: "alice", Password: "other"})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUsernameTaken)
}

func TestRegister_Validation(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), &RegisterReq{Username: "  ", Password: "secret"})
	var vErr *e.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	_, err = uc.Register(context.Background(), &RegisterReq{Username: "alice", Password: ""})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), &RegisterReq{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), &LoginReq{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)
}

// Неизвестный логин и неверный пароль неразличимы для клиента.
func TestLogin_UnknownUser(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Login(context.Background(), &LoginReq{Username: "nobody", Password: "secret"})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	uc, _, _ := newAuthFixture()

	res, err := uc.Register(context.Background(), &RegisterReq{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	user, err := uc.CurrentUser(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	require.NoError(t, uc.Logout(context.Background(), res.Token))

	_, err = uc.CurrentUser(context.Background(), res.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestCurrentUser_EmptyToken(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.CurrentUser(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestLogout_UnknownTokenIsSilent(t *testing.T) {
	uc, _, _ := newAuthFixture()

	assert.NoError(t, uc.Logout(context.Background(), "missing"))
	assert.NoError(t, uc.Logout(context.Background(), ""))
}

func TestSeedDefaultUsers(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	require.NoError(t, uc.SeedDefaultUsers(context.Background()))

	admin := userRepo.users["admin"]
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	customer := userRepo.users["customer"]
	require.NotNil(t, customer)
	assert.Equal(t, domain.RoleCustomer, customer.Role)

	// Повторный запуск не трогает существующие учётные записи.
	adminID := admin.ID
	require.NoError(t, uc.SeedDefaultUsers(context.Background()))
	assert.Equal(t, adminID, userRepo.users["admin"].ID)
	assert.Len(t, userRepo.users, 2)
}

func TestSeededAdminCanLogin(t *testing.T) {
	uc, _, _ := newAuthFixture()

	require.NoError(t, uc.SeedDefaultUsers(context.Background()))

	res, err := uc.Login(context.Background(), &LoginReq{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Role)
}
