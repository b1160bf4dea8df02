package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/khatabook/backend/internal/config"
	"github.com/khatabook/backend/internal/models"
)

// InitRedis connects to Redis using the loaded config. The returned client is
// the single persistence backend of the app.
func InitRedis(cfg config.RedisConfig, log zerolog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Info().Str("addr", cfg.Host+":"+cfg.Port).Msg("redis connection established")
	return rdb, nil
}

// RedisStore persists each collection as a JSON array under a fixed key.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisStore(client *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) LoadKhatas(ctx context.Context) ([]models.Khata, error) {
	var khatas []models.Khata
	if err := s.loadJSON(ctx, KeyKhatas, &khatas); err != nil {
		return nil, err
	}
	if khatas == nil {
		khatas = []models.Khata{}
	}
	return khatas, nil
}

func (s *RedisStore) SaveKhatas(ctx context.Context, khatas []models.Khata) error {
	return s.saveJSON(ctx, KeyKhatas, khatas)
}

func (s *RedisStore) LoadExpenses(ctx context.Context) ([]models.StandaloneExpense, error) {
	var expenses []models.StandaloneExpense
	if err := s.loadJSON(ctx, KeyExpenses, &expenses); err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []models.StandaloneExpense{}
	}
	return expenses, nil
}

func (s *RedisStore) SaveExpenses(ctx context.Context, expenses []models.StandaloneExpense) error {
	return s.saveJSON(ctx, KeyExpenses, expenses)
}

func (s *RedisStore) LoadDastiKhatas(ctx context.Context) ([]models.DastiKhata, error) {
	var dastis []models.DastiKhata
	if err := s.loadJSON(ctx, KeyDastiKhatas, &dastis); err != nil {
		return nil, err
	}
	if dastis == nil {
		dastis = []models.DastiKhata{}
	}
	return dastis, nil
}

func (s *RedisStore) SaveDastiKhatas(ctx context.Context, dastis []models.DastiKhata) error {
	return s.saveJSON(ctx, KeyDastiKhatas, dastis)
}

func (s *RedisStore) GetPreference(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) SetPreference(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) LoadBackup(ctx context.Context) (*Backup, error) {
	tsRaw, err := s.client.Get(ctx, KeyBackupTimestamp).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", KeyBackupTimestamp, err)
	}

	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", KeyBackupTimestamp, err)
	}

	b := &Backup{Timestamp: ts}
	if err := s.loadJSON(ctx, KeyBackupKhatas, &b.Khatas); err != nil {
		return nil, err
	}
	if err := s.loadJSON(ctx, KeyBackupExpenses, &b.Expenses); err != nil {
		return nil, err
	}
	if b.Khatas == nil {
		b.Khatas = []models.Khata{}
	}
	if b.Expenses == nil {
		b.Expenses = []models.StandaloneExpense{}
	}
	return b, nil
}

func (s *RedisStore) SaveBackup(ctx context.Context, b *Backup) error {
	if err := s.saveJSON(ctx, KeyBackupKhatas, b.Khatas); err != nil {
		return err
	}
	if err := s.saveJSON(ctx, KeyBackupExpenses, b.Expenses); err != nil {
		return err
	}
	if err := s.client.Set(ctx, KeyBackupTimestamp, strconv.FormatInt(b.Timestamp, 10), 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", KeyBackupTimestamp, err)
	}
	return nil
}

func (s *RedisStore) ClearBackup(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyBackupKhatas, KeyBackupExpenses, KeyBackupTimestamp).Err(); err != nil {
		return fmt.Errorf("clear backup keys: %w", err)
	}
	return nil
}

func (s *RedisStore) loadJSON(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("collection saved")
	return nil
}
