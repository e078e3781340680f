package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-core/internal/application/settlement"
	"github.com/jhoicas/pos-core/internal/domain"
)

var _ settlement.ContactLocker = (*ContactLocker)(nil)

// ContactLocker candado distribuido por contacto sobre Redis (bsm/redislock).
// Serializa liquidaciones del mismo contacto entre instancias del servicio;
// el bloqueo de filas en BD sigue siendo la garantía de última línea.
type ContactLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewClient crea el cliente Redis desde la URL de configuración.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewContactLocker construye el locker con el cliente Redis y el TTL del candado.
func NewContactLocker(client *redis.Client, ttl time.Duration) *ContactLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ContactLocker{locker: redislock.New(client), ttl: ttl}
}

// Obtain intenta tomar el candado del contacto. Si otra sesión lo tiene,
// devuelve ErrConcurrencyConflict: nada se ejecutó y el caller puede reintentar.
func (l *ContactLocker) Obtain(ctx context.Context, contactID string) (settlement.ContactLock, error) {
	key := fmt.Sprintf("settlement:contact:%s", contactID)
	lock, err := l.locker.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrConcurrencyConflict
	}
	if err != nil {
		return nil, fmt.Errorf("obtain contact lock: %w", err)
	}
	return &contactLock{lock: lock}, nil
}

type contactLock struct {
	lock *redislock.Lock
}

// Release libera el candado; expira solo por TTL si el proceso muere antes.
func (c *contactLock) Release(ctx context.Context) error {
	err := c.lock.Release(ctx)
	if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}
