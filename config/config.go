package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const APP = "uhppoted-app-xlsx"

const (
	LegacyConvert = "convert"
	LegacyDirect  = "direct"
)

type Config struct {
	Workdir     string    `mapstructure:"workdir" yaml:"workdir"`
	Credentials string    `mapstructure:"credentials" yaml:"credentials"`
	Store       string    `mapstructure:"store" yaml:"store"`
	Converter   Converter `mapstructure:"converter" yaml:"converter"`
	Legacy      Legacy    `mapstructure:"legacy" yaml:"legacy"`
	HTTP        HTTP      `mapstructure:"http" yaml:"http"`
	Log         Log       `mapstructure:"log" yaml:"log"`
}

type Converter struct {
	Command string        `mapstructure:"command" yaml:"command"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Legacy selects how Excel 97-2003 workbooks are read: 'convert' normalizes
// to .xlsx with the external converter, 'direct' reads the workbook as is.
type Legacy struct {
	Reader string `mapstructure:"reader" yaml:"reader"`
}

type HTTP struct {
	Bind string `mapstructure:"bind" yaml:"bind"`
}

type Log struct {
	File string `mapstructure:"file" yaml:"file"`
}

func Default() *Config {
	return &Config{
		Workdir:     DEFAULT_WORKDIR,
		Credentials: DEFAULT_CREDENTIALS,
		Converter: Converter{
			Command: "soffice",
		},
		Legacy: Legacy{
			Reader: LegacyConvert,
		},
		HTTP: HTTP{
			Bind: "127.0.0.1:8080",
		},
	}
}

// Load reads the configuration from the (optional) file and UHPPOTED_APP_XLSX_*
// environment variables. If file is empty, uhppoted-app-xlsx.yaml is looked up
// in the current directory and the default working directory.
func Load(file string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(APP)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DEFAULT_WORKDIR)
	}

	v.SetEnvPrefix("UHPPOTED_APP_XLSX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading configuration (%v)", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration (%v)", err)
	}

	if strings.TrimSpace(cfg.Store) == "" {
		cfg.Store = filepath.Join(cfg.Workdir, APP+".db")
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Legacy.Reader {
	case LegacyConvert, LegacyDirect:
	default:
		return fmt.Errorf("invalid legacy.reader '%s' (expected '%s' or '%s')", c.Legacy.Reader, LegacyConvert, LegacyDirect)
	}

	if c.Converter.Timeout < 0 {
		return fmt.Errorf("invalid converter.timeout '%v'", c.Converter.Timeout)
	}

	if strings.TrimSpace(c.Workdir) == "" {
		return fmt.Errorf("workdir is a required option")
	}

	return nil
}

// Uploads is the directory for files received by the web form.
func (c *Config) Uploads() string {
	return filepath.Join(c.Workdir, "uploads")
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}

		key := append(append([]string{}, parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}

		_ = v.BindEnv(strings.Join(key, "."))
	}
}
