package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // base for returned object URLs; derived from endpoint+bucket when empty
}

type Config struct {
	Port         string
	DBDSN        string
	MediaDir     string
	TemplatesDir string
	LogFile      string
	RedisAddr    string
	CookieSecure bool
	RateLimit    int // requests per minute per IP; 0 disables the global limiter
	ChatDelay    time.Duration
	S3           S3
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_dsn", "farmtech.db") // sqlite file in project root
	v.SetDefault("media_dir", "./web/media")
	v.SetDefault("templates_dir", "./web/templates")
	v.SetDefault("log_file", "./farmtech.log")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("rate_limit", 60)
	v.SetDefault("chat_delay", "800ms")
	v.SetDefault("s3_region", "us-east-1")
}

// Load reads .env (if any), an optional config.yaml in the working directory
// and the environment, in increasing order of precedence.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	delay := v.GetDuration("chat_delay")
	if delay < 0 {
		delay = 0
	}
	return Config{
		Port:         v.GetString("port"),
		DBDSN:        v.GetString("db_dsn"),
		MediaDir:     v.GetString("media_dir"),
		TemplatesDir: v.GetString("templates_dir"),
		LogFile:      v.GetString("log_file"),
		RedisAddr:    v.GetString("redis_addr"),
		CookieSecure: v.GetBool("cookie_secure"),
		RateLimit:    v.GetInt("rate_limit"),
		ChatDelay:    delay,
		S3: S3{
			Endpoint:  v.GetString("s3_endpoint"),
			Region:    v.GetString("s3_region"),
			Bucket:    v.GetString("s3_bucket"),
			AccessKey: v.GetString("s3_access_key"),
			SecretKey: v.GetString("s3_secret_key"),
			PublicURL: v.GetString("s3_public_url"),
		},
	}
}
