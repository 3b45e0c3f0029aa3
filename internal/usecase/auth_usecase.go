package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/grocery-backend/internal/cfg"
	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase реализует регистрацию, вход и проверку сессий.
// Ядро заказов про роли ничего не знает: проверка возможностей выполняется
// слоем доставки до вызова бизнес-операций.
type AuthUseCase struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	seed        *cfg.SeedCfg
	logger      logger.Logger
}

func NewAuthUC(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	seed *cfg.SeedCfg,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		seed:        seed,
		logger:      logger,
	}
}

// Register создаёт учётную запись покупателя и сразу открывает сессию.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (*LoginRes, error) {
	const op = "AuthUseCase.Register"

	if strings.TrimSpace(req.Username) == "" {
		return nil, e.Wrap(op, &e.ValidationError{Field: "username", Reason: "is required"})
	}
	if req.Password == "" {
		return nil, e.Wrap(op, &e.ValidationError{Field: "password", Reason: "is required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(req.Username, string(hash), domain.RoleCustomer))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.openSession(ctx, op, user)
}

// Login проверяет пароль и открывает сессию.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	return a.openSession(ctx, op, user)
}

// Logout закрывает сессию. Отсутствующий токен не считается ошибкой.
func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	const op = "AuthUseCase.Logout"

	if token == "" {
		return nil
	}

	if err := a.sessionRepo.Delete(ctx, token); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// CurrentUser возвращает пользователя по сессионному токену.
func (a *AuthUseCase) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	const op = "AuthUseCase.CurrentUser"

	if token == "" {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	userID, err := a.sessionRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrUnauthorized)
		}
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrUnauthorized)
		}
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// SeedDefaultUsers создаёт стартовые учётные записи admin и customer,
// если их ещё нет.
func (a *AuthUseCase) SeedDefaultUsers(ctx context.Context) error {
	const op = "AuthUseCase.SeedDefaultUsers"

	seeds := []struct {
		username string
		password string
		role     domain.Role
	}{
		{"admin", a.seed.AdminPassword, domain.RoleAdmin},
		{"customer", a.seed.CustomerPassword, domain.RoleCustomer},
	}

	for _, s := range seeds {
		_, err := a.userRepo.GetByUsername(ctx, s.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, e.ErrNotFound) {
			return e.Wrap(op, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return e.Wrap(op, err)
		}

		if _, err := a.userRepo.Create(ctx, domain.NewUser(s.username, string(hash), s.role)); err != nil {
			// Параллельный запуск мог успеть создать пользователя первым.
			if errors.Is(err, e.ErrUsernameTaken) {
				continue
			}
			return e.Wrap(op, err)
		}

		a.logger.Infof("seed user %q created", s.username)
	}

	return nil
}

// openSession выдаёт новый сессионный токен для пользователя.
func (a *AuthUseCase) openSession(ctx context.Context, op string, user *domain.User) (*LoginRes, error) {
	token := uuid.NewString()

	if err := a.sessionRepo.Set(ctx, token, user.ID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &LoginRes{Token: token, Role: user.Role}, nil
}
