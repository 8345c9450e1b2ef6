package config

import (
	"log"
	"os"
	"strings"

	"github.com/dewoosin/paperly-sub000/pkg/constant"
	"github.com/spf13/viper"
)

type Config struct {
	Env                     string `mapstructure:"ENV"`
	Port                    string `mapstructure:"PORT"`
	DBURL                   string `mapstructure:"DB_URL"`
	RedisURL                string `mapstructure:"REDIS_URL"`
	AccessTokenSecret       string `mapstructure:"ACCESS_TOKEN_SECRET"`
	AccessExpiryMin         int    `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	RefreshExpiryMin        int    `mapstructure:"REFRESH_TOKEN_EXPIRY"`
	LoginMaxAttempts        int    `mapstructure:"LOGIN_MAX_ATTEMPTS"`
	LockoutMinutes          int    `mapstructure:"LOCKOUT_MINUTES"`
	VerificationExpiryHours int    `mapstructure:"VERIFICATION_TOKEN_EXPIRY"`
	MaxActiveRefreshTokens  int    `mapstructure:"MAX_ACTIVE_REFRESH_TOKENS"`
	BcryptCost              int    `mapstructure:"BCRYPT_COST"`
}

// Load reads config/.env.dev or config/.env.prod depending on ENV, with
// environment variables taking precedence over file values. Missing
// required secrets are fatal at startup rather than at first use.
func Load() *Config {
	v := viper.New()

	env := "development"
	if e := os.Getenv("ENV"); e != "" {
		env = e
	}

	suffix := "dev"
	if env == "production" {
		suffix = "prod"
	}

	v.AddConfigPath("config")
	v.SetConfigName(".env." + suffix)
	v.SetConfigType("env")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("ENV", env)
	v.SetDefault("PORT", constant.DefaultPort)
	v.SetDefault("ACCESS_TOKEN_EXPIRY", constant.DefaultAccessTokenExpiryMin)
	v.SetDefault("REFRESH_TOKEN_EXPIRY", constant.DefaultRefreshTokenExpiryMin)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", constant.DefaultLoginMaxAttempts)
	v.SetDefault("LOCKOUT_MINUTES", constant.DefaultLockoutMinutes)
	v.SetDefault("VERIFICATION_TOKEN_EXPIRY", constant.DefaultVerificationExpiryHours)
	v.SetDefault("MAX_ACTIVE_REFRESH_TOKENS", constant.DefaultMaxActiveRefreshTokens)
	v.SetDefault("BCRYPT_COST", constant.DefaultBcryptCost)

	for _, key := range []string{
		"ENV", "PORT", "DB_URL", "REDIS_URL", "ACCESS_TOKEN_SECRET",
		"ACCESS_TOKEN_EXPIRY", "REFRESH_TOKEN_EXPIRY", "LOGIN_MAX_ATTEMPTS",
		"LOCKOUT_MINUTES", "VERIFICATION_TOKEN_EXPIRY",
		"MAX_ACTIVE_REFRESH_TOKENS", "BCRYPT_COST",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("warn: could not read config file: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	for key, val := range map[string]string{
		"DB_URL":              cfg.DBURL,
		"ACCESS_TOKEN_SECRET": cfg.AccessTokenSecret,
	} {
		if val == "" {
			log.Fatalf("Missing required config: %s", key)
		}
	}

	return &cfg
}
