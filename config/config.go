package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort          = 3306
	DefaultVersion       = "dev"
	DefaultMysqldumpPath = "mysqldump"
	DefaultMysqlPath     = "mysql"
)

var (
	ErrMissingHost     = errors.New("database host is required")
	ErrMissingUser     = errors.New("database user is required")
	ErrMissingDatabase = errors.New("database name is required")
)

// Config holds the connection parameters and the artifact location convention
// for one fixture database. It is immutable after construction.
type Config struct {
	Host          string `yaml:"host"` // host or host:port
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Database      string `yaml:"database"`
	TablePrefix   string `yaml:"table-prefix"`
	Version       string `yaml:"version"`
	StoreDir      string `yaml:"store-dir"`
	DumpFile      string `yaml:"dump-file"`
	MysqldumpPath string `yaml:"mysqldump-path"`
	MysqlPath     string `yaml:"mysql-path"`
}

type Option func(config *Config)

func WithPassword(password string) Option {
	return func(config *Config) {
		config.Password = password
	}
}

func WithTablePrefix(tablePrefix string) Option {
	return func(config *Config) {
		config.TablePrefix = tablePrefix
	}
}

func WithVersion(version string) Option {
	return func(config *Config) {
		config.Version = version
	}
}

func WithStoreDir(storeDir string) Option {
	return func(config *Config) {
		config.StoreDir = storeDir
	}
}

func WithDumpFile(dumpFile string) Option {
	return func(config *Config) {
		config.DumpFile = dumpFile
	}
}

func NewConfig(host, user, database string, opts ...Option) *Config {
	config := &Config{
		Host:     host,
		User:     user,
		Database: database,
	}

	for _, opt := range opts {
		opt(config)
	}

	config.applyDefaults()

	return config
}

func (config *Config) applyDefaults() {
	if strings.TrimSpace(config.Version) == "" {
		config.Version = DefaultVersion
	}

	if strings.TrimSpace(config.StoreDir) == "" {
		config.StoreDir = os.TempDir()
	}

	if strings.TrimSpace(config.MysqldumpPath) == "" {
		config.MysqldumpPath = DefaultMysqldumpPath
	}

	if strings.TrimSpace(config.MysqlPath) == "" {
		config.MysqlPath = DefaultMysqlPath
	}
}

// Load reads a yaml config document, applies defaults and validates it.
func Load(content []byte) (*Config, error) {
	var config Config

	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, fmt.Errorf("fail to parse config content, error: %v", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (config *Config) Validate() error {
	var errs error

	if strings.TrimSpace(config.Host) == "" {
		errs = errors.Join(errs, ErrMissingHost)
	}

	if strings.TrimSpace(config.User) == "" {
		errs = errors.Join(errs, ErrMissingUser)
	}

	if strings.TrimSpace(config.Database) == "" {
		errs = errors.Join(errs, ErrMissingDatabase)
	}

	return errs
}

// HostPort splits the configured host[:port] value. A bare host defaults to
// port 3306. IPv6 literals need brackets to carry a port ([::1]:3307), a bare
// literal like ::1 counts as a host without port.
func (config *Config) HostPort() (string, int, error) {
	value := strings.TrimSpace(config.Host)

	host, port, err := net.SplitHostPort(value)
	if err != nil {
		var addrErr *net.AddrError
		if errors.As(err, &addrErr) && strings.Contains(addrErr.Err, "missing port") {
			return strings.Trim(value, "[]"), DefaultPort, nil
		}

		if strings.Count(value, ":") >= 2 && !strings.Contains(value, "]") {
			return value, DefaultPort, nil
		}

		return "", 0, fmt.Errorf("invalid host value %s, error: %v", config.Host, err)
	}

	dbPort, err := strconv.Atoi(port)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port value %s, error: %v", port, err)
	}

	return host, dbPort, nil
}

// DSN formats the go-sql-driver DSN used by the query connection.
func (config *Config) DSN() (string, error) {
	host, port, err := config.HostPort()
	if err != nil {
		return "", err
	}

	dsnConfig := mysql.NewConfig()
	dsnConfig.User = config.User
	dsnConfig.Passwd = config.Password
	dsnConfig.Net = "tcp"
	dsnConfig.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	dsnConfig.DBName = config.Database

	return dsnConfig.FormatDSN(), nil
}
