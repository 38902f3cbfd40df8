package config

import (
	"bufio"
	"os"
	"path"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	AssetsDir string `yaml:"assets_dir" json:"assets_dir"`
}

type DatabaseConfig struct {
	// Properties is the path of the external db.properties credential file
	Properties string `yaml:"properties" json:"properties"`
	Name       string `yaml:"name" json:"name"`
	// MaxInflight bounds concurrent outstanding store calls
	MaxInflight int64 `yaml:"max_inflight" json:"max_inflight"`
	// Timeout is the per-operation deadline in seconds
	Timeout int `yaml:"timeout" json:"timeout"`
}

type GatewayConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Collections is the allow-list of names the /collections route may resolve
	Collections []string `yaml:"collections" json:"collections"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Gateway  GatewayConfig  `yaml:"gateway" json:"gateway"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
}

// Credentials holds the five connection values plus the database name,
// loaded from the external properties file. The URI is assembled as
// prefix + urlencode(user) + ":" + urlencode(pwd) + dbUrl + params.
type Credentials struct {
	Prefix   string `mapstructure:"prefix"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"pwd"`
	Name     string `mapstructure:"dbName"`
	URL      string `mapstructure:"dbUrl"`
	Params   string `mapstructure:"params"`
}

var DefaultAppConfig = &AppConfig{
	System: SystemConfig{
		Appid:    "CourseDesk",
		Location: "Europe/London",
		Workdir:  "/var/coursedesk",
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      3000,
		AssetsDir: "./public",
	},
	Database: DatabaseConfig{
		Properties:  "./conf/db.properties",
		Name:        "coursework",
		MaxInflight: 64,
		Timeout:     5,
	},
	Gateway: GatewayConfig{
		Enabled:     true,
		Collections: []string{"Courses", "Orders"},
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/coursedesk/coursedesk.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads the yaml configuration file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("COURSEDESK_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("COURSEDESK_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("COURSEDESK_ASSETS_DIR", func(v string) { cfg.Web.AssetsDir = v })
	setEnvValue("COURSEDESK_DB_PROPERTIES", func(v string) { cfg.Database.Properties = v })
	setEnvValue("COURSEDESK_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("COURSEDESK_DB_TIMEOUT", func(v string) { cfg.Database.Timeout = cast.ToInt(v) })
	setEnvValue("COURSEDESK_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })

	if cfg.Database.MaxInflight <= 0 {
		cfg.Database.MaxInflight = DefaultAppConfig.Database.MaxInflight
	}
	if cfg.Database.Timeout <= 0 {
		cfg.Database.Timeout = DefaultAppConfig.Database.Timeout
	}
	return cfg
}

// LoadCredentials parses a java-style properties file of db.* keys into
// Credentials. Lines are key=value; '#' and '!' start comments.
func LoadCredentials(cfile string) (Credentials, error) {
	var creds Credentials
	fd, err := os.Open(cfile)
	if err != nil {
		return creds, errors.Wrap(err, "open db properties")
	}
	defer fd.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		k = strings.TrimSpace(k)
		k = strings.TrimPrefix(k, "db.")
		values[k] = strings.TrimSpace(v)
	}
	if err := scanner.Err(); err != nil {
		return creds, errors.Wrap(err, "read db properties")
	}

	if err := mapstructure.Decode(values, &creds); err != nil {
		return creds, errors.Wrap(err, "decode db properties")
	}
	if creds.Prefix == "" || creds.URL == "" {
		return creds, errors.Errorf("incomplete db properties in %s", cfile)
	}
	return creds, nil
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0o755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0o755)
}
