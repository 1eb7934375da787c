package config

import (
    "strings"
    "time"

    "github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
    Server   ServerConfig   `mapstructure:"server"`
    Database DatabaseConfig `mapstructure:"database"`
    JWT      JWTConfig      `mapstructure:"jwt"`
    Redis    RedisConfig    `mapstructure:"redis"`
    Admin    AdminConfig    `mapstructure:"admin"`
    Bangumi  BangumiConfig  `mapstructure:"bangumi"`
    Log      LogConfig      `mapstructure:"log"`
    Sentry   SentryConfig   `mapstructure:"sentry"`
    Trace    TraceConfig    `mapstructure:"trace"`
}

type ServerConfig struct {
    Addr string `mapstructure:"addr"`
    Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
    Driver string `mapstructure:"driver"` // sqlite / postgres
    DSN    string `mapstructure:"dsn"`
}

type JWTConfig struct {
    Secret string        `mapstructure:"secret"`
    Expire time.Duration `mapstructure:"expire"`
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"` // 留空则不启用 Redis
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

// AdminConfig 启动时引导的管理员账号
type AdminConfig struct {
    Username string `mapstructure:"username"`
    Email    string `mapstructure:"email"`
    Password string `mapstructure:"password"`
}

type BangumiConfig struct {
    Username string        `mapstructure:"username"`
    CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
    Level string `mapstructure:"level"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
    Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint，留空则不上报
}

// Load 读取 config.yaml 并允许 TRICORE_* 环境变量覆盖
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")

    v.SetEnvPrefix("TRICORE")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    v.SetDefault("server.addr", ":8080")
    v.SetDefault("server.mode", "debug")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "tricore.db")
    v.SetDefault("jwt.expire", "72h")
    v.SetDefault("bangumi.cache_ttl", "1h")
    v.SetDefault("log.level", "info")

    if err := v.ReadInConfig(); err != nil {
        // 配置文件可缺省，全部走默认值与环境变量
        if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
            return nil, err
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
