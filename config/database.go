package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"vortex"`
	Password string `env:"PASSWORD"                envDefault:"vortex"`
	Name     string `env:"NAME"                    envDefault:"vortex"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig controls the read-through cache in front of profile and posting reads.
type CacheConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// UseRedis adds the shared Redis tier behind the per-process LRU.
	UseRedis      bool          `env:"USE_REDIS"      envDefault:"true"`
	LocalCapacity int           `env:"LOCAL_CAPACITY" envDefault:"1024"`
	LocalTTL      time.Duration `env:"LOCAL_TTL"      envDefault:"30s"`
	RemoteTTL     time.Duration `env:"REMOTE_TTL"     envDefault:"5m"`
}

// Sanitize keeps capacities and TTLs positive.
func (c *CacheConfig) Sanitize() {
	if c.LocalCapacity <= 0 {
		c.LocalCapacity = 1024
	}
	if c.LocalTTL <= 0 {
		c.LocalTTL = 30 * time.Second
	}
	if c.RemoteTTL <= 0 {
		c.RemoteTTL = 5 * time.Minute
	}
	// The local tier must not outlive the shared one.
	if c.LocalTTL > c.RemoteTTL {
		c.LocalTTL = c.RemoteTTL
	}
}
