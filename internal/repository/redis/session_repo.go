package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/grocery-backend/internal/cfg"
	"github.com/DRSN-tech/grocery-backend/pkg/clients"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo хранит сессионные токены в Redis с TTL.
// В отличие от кэшей, ошибки здесь не проглатываются: потеря сессии — это
// ответ 401, а не деградация.
type SessionRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Set сохраняет сессию c временем жизни из конфигурации.
func (s *SessionRepo) Set(ctx context.Context, token string, userID int64) error {
	key := s.sessionKey(token)

	if err := s.client.Client.Set(ctx, key, userID, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает идентификатор пользователя по токену.
// Истёкший или неизвестный токен — ErrNotFound.
func (s *SessionRepo) Get(ctx context.Context, token string) (int64, error) {
	key := s.sessionKey(token)

	userID, err := s.client.Client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return 0, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return userID, nil
}

// Delete закрывает сессию. Удаление несуществующего токена — не ошибка.
func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	key := s.sessionKey(token)

	if err := s.client.Client.Del(ctx, key).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// sessionKey возвращает Redis-ключ сессии.
func (s *SessionRepo) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
