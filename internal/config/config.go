package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"

	AuditStoreDatabase = "database"
	AuditStoreMongo    = "mongo"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Database  *DatabaseConfig  `mapstructure:"database"`
	Auth      *AuthConfig      `mapstructure:"auth"`
	Audit     *AuditConfig     `mapstructure:"audit"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	Cache     *CacheConfig     `mapstructure:"cache"`
	RateLimit *RateLimitConfig `mapstructure:"rate_limit"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver      string          `mapstructure:"driver"`
	AutoMigrate bool            `mapstructure:"auto_migrate"`
	Postgres    *PostgresConfig `mapstructure:"postgres"`
	MySQL       *MySQLConfig    `mapstructure:"mysql"`
	Mongo       *MongoConfig    `mapstructure:"mongo"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"dbname"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AuthConfig struct {
	JWTSigningKey     string                `mapstructure:"jwt_signing_key"`
	JWTIssuer         string                `mapstructure:"jwt_issuer"`
	TokenTTL          time.Duration         `mapstructure:"token_ttl"`
	BcryptCost        int                   `mapstructure:"bcrypt_cost"`
	SelfRegisterRoles []string              `mapstructure:"self_register_roles"`
	PasswordPolicy    domain.PasswordPolicy `mapstructure:"password_policy"`
}

// AllowedRoles returns the roles a caller may pick when registering.
func (c *AuthConfig) AllowedRoles() []domain.Role {
	roles := make([]domain.Role, 0, len(c.SelfRegisterRoles))
	for _, name := range c.SelfRegisterRoles {
		if r, ok := domain.ParseRole(name); ok {
			roles = append(roles, r)
		}
	}

	return roles
}

type AuditConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	QueueSize       int    `mapstructure:"queue_size"`
	Store           string `mapstructure:"store"`
	MongoCollection string `mapstructure:"mongo_collection"`
	AMQPURL         string `mapstructure:"amqp_url"`
	AMQPQueue       string `mapstructure:"amqp_queue"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Prefix  string        `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Capacity    int           `mapstructure:"capacity"`
	RefillEvery time.Duration `mapstructure:"refill_every"`
	Prefix      string        `mapstructure:"prefix"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "local")
	v.SetDefault("api.port", "8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.jwt_issuer", "shared-experiences-api")
	v.SetDefault("auth.token_ttl", 3*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.self_register_roles", []string{string(domain.RoleGuest), string(domain.RoleProvider)})
	v.SetDefault("auth.password_policy.min_length", domain.DefaultPasswordPolicy.MinLength)
	v.SetDefault("auth.password_policy.require_upper", domain.DefaultPasswordPolicy.RequireUpper)
	v.SetDefault("auth.password_policy.require_lower", domain.DefaultPasswordPolicy.RequireLower)
	v.SetDefault("auth.password_policy.require_digit", domain.DefaultPasswordPolicy.RequireDigit)
	v.SetDefault("auth.password_policy.require_special", domain.DefaultPasswordPolicy.RequireSpecial)
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.queue_size", 256)
	v.SetDefault("audit.store", AuditStoreDatabase)
	v.SetDefault("audit.mongo_collection", "audit_records")
	v.SetDefault("audit.amqp_queue", "audit.records")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prefix", "reports")
	v.SetDefault("rate_limit.capacity", 10)
	v.SetDefault("rate_limit.refill_every", 6*time.Second)
	v.SetDefault("rate_limit.prefix", "ratelimit")
}

// Load reads the YAML file at path and overlays environment variables
// (API_PORT overrides api.port and so on).
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	// Changes are reported but only picked up on restart.
	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed, restart to apply", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()

	return conf, nil
}

func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Auth, validation.Required),
		validation.Field(&c.Audit, validation.Required),
	)
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
	)
}

func (c *GinConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.In("debug", "release", "test")),
	)
}

func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverPostgres, DriverMySQL, DriverMongo)),
		validation.Field(&c.MySQL, requiredIf(c.Driver == DriverMySQL)...),
		validation.Field(&c.Mongo, requiredIf(c.Driver == DriverMongo)...),
	)
}

func (c *AuthConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.TokenTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.BcryptCost, validation.Min(4), validation.Max(31)),
		validation.Field(&c.PasswordPolicy, validation.By(func(value interface{}) error {
			if p, _ := value.(domain.PasswordPolicy); p.MinLength < 1 {
				return fmt.Errorf("min_length must be at least 1")
			}
			return nil
		})),
	)
}

func (c *AuditConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.QueueSize, append(requiredIf(c.Enabled), validation.Min(0))...),
		validation.Field(&c.Store, validation.In(AuditStoreDatabase, AuditStoreMongo)),
	)
}

func requiredIf(cond bool) []validation.Rule {
	if cond {
		return []validation.Rule{validation.Required}
	}

	return nil
}
