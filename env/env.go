package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"

	"github.com/prestafix/fixturedump/config"
)

const (
	AWS_REGION            = "AWS_REGION"
	AWS_ACCESS_KEY_ID     = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY = "AWS_SECRET_ACCESS_KEY"
	AWS_SESSION_TOKEN     = "AWS_SESSION_TOKEN"
	DATABASE_DSN          = "DATABASE_DSN"
	FIXTURE_TABLE_PREFIX  = "FIXTURE_TABLE_PREFIX"
	FIXTURE_STORE_DIR     = "FIXTURE_STORE_DIR"
	FIXTURE_VERSION       = "FIXTURE_VERSION"
)

var ErrMissingEnv = errors.New("at least one env is required to resolve")

type AWSCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

func EnsureRequiredVars(vars []string) error {
	var errs error

	for _, v := range vars {
		if os.Getenv(v) == "" {
			errs = errors.Join(errs, fmt.Errorf("missing required environment variable %s", v))
		}
	}

	return errs
}

type EnvResolver struct {
	aws      bool
	database bool
}

type resolverOption func(resolver *EnvResolver)

func NewEnvResolver(opts ...resolverOption) *EnvResolver {
	resolver := &EnvResolver{}

	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

func WithAWS() resolverOption {
	return func(resolver *EnvResolver) {
		resolver.aws = true
	}
}

// WithDatabase resolves DATABASE_DSN plus the optional FIXTURE_* overrides
// into a connection config.
func WithDatabase() resolverOption {
	return func(resolver *EnvResolver) {
		resolver.database = true
	}
}

type Values struct {
	AWSCredentials AWSCredentials
	Database       *config.Config
}

func (resolver *EnvResolver) Resolve() (Values, error) {
	requiredVars := make([]string, 0)

	if resolver.aws {
		requiredVars = append(requiredVars, AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY)
	}

	if resolver.database {
		requiredVars = append(requiredVars, DATABASE_DSN)
	}

	if len(requiredVars) == 0 {
		return Values{}, ErrMissingEnv
	}

	if err := EnsureRequiredVars(requiredVars); err != nil {
		return Values{}, err
	}

	values := Values{
		AWSCredentials: AWSCredentials{
			AccessKeyID:     os.Getenv(AWS_ACCESS_KEY_ID),
			SecretAccessKey: os.Getenv(AWS_SECRET_ACCESS_KEY),
			SessionToken:    os.Getenv(AWS_SESSION_TOKEN),
			Region:          os.Getenv(AWS_REGION),
		},
	}

	if resolver.database {
		databaseConfig, err := databaseConfigFromEnv()
		if err != nil {
			return Values{}, err
		}

		values.Database = databaseConfig
	}

	return values, nil
}

func databaseConfigFromEnv() (*config.Config, error) {
	dsn := os.Getenv(DATABASE_DSN)

	dsnConfig, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("fail to parse %s, error: %v", DATABASE_DSN, err)
	}

	databaseConfig := config.NewConfig(
		dsnConfig.Addr,
		dsnConfig.User,
		dsnConfig.DBName,
		config.WithPassword(dsnConfig.Passwd),
		config.WithTablePrefix(os.Getenv(FIXTURE_TABLE_PREFIX)),
		config.WithStoreDir(os.Getenv(FIXTURE_STORE_DIR)),
		config.WithVersion(os.Getenv(FIXTURE_VERSION)),
	)

	if err := databaseConfig.Validate(); err != nil {
		return nil, err
	}

	return databaseConfig, nil
}
