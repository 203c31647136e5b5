package store

import (
	"strings"

	errors "github.com/Laisky/errors/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Laisky/miridev-mcp/library/config"
)

const (
	// BackendFile stores records as JSON files in the config directory.
	BackendFile = "file"
	// BackendRedis stores records in Redis.
	BackendRedis = "redis"
)

// Settings selects and configures the record backend.
type Settings struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// LoadSettings reads storage settings and applies defaults.
func LoadSettings(get config.Getter) Settings {
	return Settings{
		Backend:       strings.ToLower(config.String(get, "settings.storage.backend", BackendFile)),
		Dir:           config.ExpandHome(config.String(get, "settings.storage.dir", config.DefaultDir())),
		RedisAddr:     config.String(get, "settings.storage.redis.addr", "localhost:6379"),
		RedisPassword: config.String(get, "settings.storage.redis.password", ""),
		RedisDB:       config.Int(get, "settings.storage.redis.db", 0),
		RedisPrefix:   config.String(get, "settings.storage.redis.prefix", DefaultRedisPrefix),
	}
}

// Open builds the configured RecordStore.
func Open(settings Settings) (RecordStore, error) {
	switch settings.Backend {
	case "", BackendFile:
		return NewFileStore(settings.Dir)
	case BackendRedis:
		return NewRedisStore(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		}, settings.RedisPrefix)
	default:
		return nil, errors.Errorf("unknown storage backend %q", settings.Backend)
	}
}
