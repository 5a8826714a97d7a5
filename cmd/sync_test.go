package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prestafix/fixturedump/env"
)

func TestResolveS3FromEnv(t *testing.T) {
	t.Setenv(env.AWS_REGION, "ap-southeast-2")
	t.Setenv(env.AWS_ACCESS_KEY_ID, "key-id")
	t.Setenv(env.AWS_SECRET_ACCESS_KEY, "secret")

	s3Bucket = "fixtures"
	defer func() { s3Bucket = "" }()

	s3Storage, err := resolveS3("ps_dump_shop_test_dev.sql")
	assert.Nil(t, err)
	assert.NotNil(t, s3Storage)
}

func TestResolveS3IncompleteEnv(t *testing.T) {
	t.Setenv(env.AWS_ACCESS_KEY_ID, "key-id")
	t.Setenv(env.AWS_REGION, "")
	t.Setenv(env.AWS_SECRET_ACCESS_KEY, "")

	_, err := resolveS3("ps_dump_shop_test_dev.sql")
	assert.ErrorContains(t, err, env.AWS_REGION)
	assert.ErrorContains(t, err, env.AWS_SECRET_ACCESS_KEY)
}

func TestResolveS3FlagsWinOverEnv(t *testing.T) {
	t.Setenv(env.AWS_ACCESS_KEY_ID, "key-id")

	// With a flag override set, the incomplete environment is never consulted.
	s3AccessKeyId = "flag-key-id"
	s3SecretAccessKey = "flag-secret"
	defer func() {
		s3AccessKeyId = ""
		s3SecretAccessKey = ""
	}()

	s3Storage, err := resolveS3("ps_dump_shop_test_dev.sql")
	assert.Nil(t, err)
	assert.NotNil(t, s3Storage)
}
