package config

// RedisConfig contains Redis configuration for durable credential storage.
// When disabled (local development without Redis), credentials are kept in
// process memory and a restart requires a fresh login.
type RedisConfig struct {
	Enabled  bool   `env:"ENABLED"  envDefault:"true"`
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
