package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Cache   CacheConfig   `mapstructure:"cache"`
	OIDC    OIDCConfig    `mapstructure:"oidc"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Upload  UploadConfig  `mapstructure:"upload"`
	App     AppConfig     `mapstructure:"app"`
	Menu    MenuConfig    `mapstructure:"menu"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string    `mapstructure:"port"`
	TLS  TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // "mysql" or "sqlite3"
	DSN    string `mapstructure:"dsn"`
}

// SessionConfig holds session cookie configuration.
type SessionConfig struct {
	Lifetime int `mapstructure:"lifetime"` // hours
}

// CacheConfig holds the rendered-content cache configuration.
type CacheConfig struct {
	FilePath string `mapstructure:"file_path"`
	TTL      int    `mapstructure:"ttl"` // minutes
}

// OIDCConfig holds OIDC client configuration. Single sign-on is disabled
// when IssuerURL is empty.
type OIDCConfig struct {
	IssuerURL    string `mapstructure:"issuer_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// AuthConfig holds authorization configuration.
type AuthConfig struct {
	ModelPath    string `mapstructure:"model_path"`
	AdminAcronym string `mapstructure:"admin_acronym"`
}

// UploadConfig holds image upload configuration.
type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	MaxSize int64  `mapstructure:"max_size"` // bytes
}

// AppConfig holds site-wide settings.
type AppConfig struct {
	Timezone    string `mapstructure:"timezone"`
	BaseURL     string `mapstructure:"base_url"`
	DefaultHits int    `mapstructure:"default_hits"`
	HitsOptions []int  `mapstructure:"hits_options"`
}

// MenuConfig describes the site navigation bar. Wrapper is the element the
// rendered menu is wrapped in; ID and Class are set on that element.
type MenuConfig struct {
	ID      string     `mapstructure:"id"`
	Class   string     `mapstructure:"class"`
	Wrapper string     `mapstructure:"wrapper"`
	Items   []MenuItem `mapstructure:"items"`
}

// MenuItem is one entry of the navigation bar, optionally with a submenu.
// Show limits the item to "anonymous" visitors, logged in "user"s other
// than the administrator, or the "admin"; empty shows it to everyone.
type MenuItem struct {
	Text    string     `mapstructure:"text"`
	URL     string     `mapstructure:"url"`
	Title   string     `mapstructure:"title"`
	Class   string     `mapstructure:"class"`
	Show    string     `mapstructure:"show"`
	Submenu []MenuItem `mapstructure:"submenu"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "rental:rental@tcp(localhost:3306)/rental?parseTime=true&clientFoundRows=true&charset=utf8mb4")
	v.SetDefault("session.lifetime", 24)
	v.SetDefault("cache.file_path", "cache.db")
	v.SetDefault("cache.ttl", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.model_path", "auth_model.conf")
	v.SetDefault("auth.admin_acronym", "admin")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size", 2*1024*1024)
	v.SetDefault("app.timezone", "Europe/Stockholm")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.default_hits", 8)
	v.SetDefault("app.hits_options", []int{2, 4, 8})
	v.SetDefault("menu.class", "navbar")
	v.SetDefault("menu.wrapper", "nav")
	v.SetDefault("menu.items", []map[string]interface{}{
		{"text": "Home", "url": "/", "title": "Home"},
		{"text": "Movies", "url": "/movies", "title": "Movies"},
		{"text": "News", "url": "/news", "title": "News"},
		{"text": "About", "url": "/pages/about", "title": "About us"},
		{"text": "Admin", "url": "/content", "title": "Administration", "show": "admin", "submenu": []map[string]interface{}{
			{"text": "Content", "url": "/content", "title": "Content"},
			{"text": "Users", "url": "/users", "title": "User accounts"},
		}},
		{"text": "Account", "url": "/auth/status", "title": "My account", "show": "user"},
		{"text": "Login", "url": "/auth/login", "title": "Log in", "show": "anonymous"},
	})
}

// LoadConfig reads configuration from command line flags, a config file and
// environment variables, in increasing order of precedence for the latter two.
func LoadConfig(args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	flags := pflag.NewFlagSet("rental-movies", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to the configuration file")
	flags.String("port", "", "port to listen on")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if f := flags.Lookup("port"); f != nil && f.Changed {
		if err := v.BindPFlag("server.port", f); err != nil {
			return nil, err
		}
	}

	// Set up viper to read from config file
	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/rental-movies/")
		v.AddConfigPath("$HOME/.rental-movies")
	}

	// Attempt to read the config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
