package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewS3(t *testing.T) {
	s3 := NewS3("fixtures", "ps_dump_shop_test_dev.sql", "ap-southeast-2", "accessKey", "secret")

	assert.Equal(t, "fixtures", s3.bucket)
	assert.Equal(t, "ps_dump_shop_test_dev.sql", s3.key)
	assert.Equal(t, "ap-southeast-2", s3.region)
	assert.Equal(t, "accessKey", s3.accessKeyId)
	assert.Equal(t, "secret", s3.secretAccessKey)
}

func TestAWSConfig(t *testing.T) {
	s3 := NewS3("fixtures", "dump.sql", "ap-southeast-2", "accessKey", "secret")

	awsConfig := s3.awsConfig()
	assert.Equal(t, "ap-southeast-2", *awsConfig.Region)

	value, err := awsConfig.Credentials.Get()
	assert.Nil(t, err)
	assert.Equal(t, "accessKey", value.AccessKeyID)
	assert.Equal(t, "secret", value.SecretAccessKey)
}

func TestAWSConfigDefaultChain(t *testing.T) {
	s3 := NewS3("fixtures", "dump.sql", "", "", "")

	awsConfig := s3.awsConfig()
	assert.Nil(t, awsConfig.Region)
	assert.Nil(t, awsConfig.Credentials)
}

func TestSaveInvalidBucket(t *testing.T) {
	s3 := NewS3("", "dump.sql", "ap-southeast-2", "none", "none")

	err := s3.Save(strings.NewReader("hello s3"), false, false)
	assert.ErrorContains(t, err, "fail to upload fixture dump")
}

func TestGetContentInvalidBucket(t *testing.T) {
	s3 := NewS3("", "dump.sql", "ap-southeast-2", "none", "none")

	_, err := s3.GetContent()
	assert.ErrorContains(t, err, "fail to fetch fixture dump")
}
