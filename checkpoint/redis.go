package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores the checkpoint as a string value under a single key.
type Redis struct {
	client redis.Cmdable
	key    string
}

func NewRedis(client redis.Cmdable, key string) *Redis {
	return &Redis{
		client: client,
		key:    key,
	}
}

func (r *Redis) Load(ctx context.Context) (time.Time, error) {
	v, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return Epoch, ErrNotFound
	} else if err != nil {
		return Epoch, fmt.Errorf("error reading redis key %s (%w)", r.key, err)
	}

	return Parse(v)
}

func (r *Redis) Save(ctx context.Context, checkpoint time.Time) error {
	if err := r.client.Set(ctx, r.key, Format(checkpoint), 0).Err(); err != nil {
		return fmt.Errorf("error writing redis key %s (%w)", r.key, err)
	}

	return nil
}

func (r *Redis) String() string {
	return fmt.Sprintf("redis:%s", r.key)
}
