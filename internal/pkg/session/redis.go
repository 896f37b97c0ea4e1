package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"goclinic/internal/domain"
	"goclinic/internal/pkg/cache"
)

// Chaves espelhando o localStorage do cliente original, com namespace
// para não colidir com outros usos do mesmo Redis.
const (
	keyToken  = "goclinic:session:token"
	keyRole   = "goclinic:session:role"
	keyUserID = "goclinic:session:userId"
	keyUser   = "goclinic:session:user"
)

// RedisStore persiste a sessão em Redis, para instalações com mais de
// um terminal compartilhando o mesmo login (balcão/kiosk). Implementa o
// mesmo contrato do FileStore; o TTL opcional expira a sessão inteira.
type RedisStore struct {
	client cache.Client
	ttl    time.Duration
}

// NewRedisStore cria um store sobre o cliente de cache dado.
// ttl = 0 mantém a sessão até o logout, como o localStorage.
func NewRedisStore(client cache.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save grava as quatro chaves da sessão.
func (s *RedisStore) Save(session domain.Session) error {
	ctx := context.Background()

	userJSON := ""
	if session.User != nil {
		data, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		userJSON = string(data)
	}

	pairs := map[string]string{
		keyToken:  session.Token,
		keyRole:   string(session.Role),
		keyUserID: session.UserID,
		keyUser:   userJSON,
	}

	for key, value := range pairs {
		if err := s.client.Set(ctx, key, value, s.ttl); err != nil {
			return err
		}
	}
	return nil
}

// Read devolve a sessão corrente; chaves ausentes viram campos vazios.
func (s *RedisStore) Read() (domain.Session, error) {
	ctx := context.Background()

	token, err := s.get(ctx, keyToken)
	if err != nil {
		return domain.Session{}, err
	}
	role, err := s.get(ctx, keyRole)
	if err != nil {
		return domain.Session{}, err
	}
	userID, err := s.get(ctx, keyUserID)
	if err != nil {
		return domain.Session{}, err
	}
	userJSON, err := s.get(ctx, keyUser)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		Token:  token,
		Role:   domain.UserRole(role),
		UserID: userID,
	}

	if userJSON != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(userJSON), &user); err == nil {
			session.User = &user
		}
	}

	return session, nil
}

// Clear remove todas as chaves; usado no logout.
func (s *RedisStore) Clear() error {
	ctx := context.Background()
	for _, key := range []string{keyToken, keyRole, keyUserID, keyUser} {
		if err := s.client.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// get traduz cache miss para string vazia (ausência de chave = deslogado).
func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", nil
	}
	return value, err
}
