package usecase

import (
	"context"
	"time"

	"skill-hire/internal/domain"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type ClientCounter interface {
	ClientCount() int
}

type HealthUsecase interface {
	Check(ctx context.Context) domain.HealthStatus
}

type Health struct {
	db    Pinger
	redis Pinger
	ws    ClientCounter
}

func NewHealthUsecase(db, redis Pinger, ws ClientCounter) *Health {
	return &Health{db: db, redis: redis, ws: ws}
}

func (u *Health) Check(ctx context.Context) domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	st := domain.HealthStatus{ServerTime: time.Now().UTC()}
	if u.db != nil {
		st.DatabaseHealthy = u.db.Ping(ctx) == nil
	}
	if u.redis != nil {
		st.RedisHealthy = u.redis.Ping(ctx) == nil
	}
	if u.ws != nil {
		st.WSClients = u.ws.ClientCount()
	}
	return st
}
