package s3

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	s3Client "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/prestafix/fixturedump/filenaming"
)

// S3 pushes and pulls fixture dump artifacts so test runners can share the
// same baseline. Region and credentials fall back to the default AWS chain
// when unset.
type S3 struct {
	bucket          string
	key             string
	region          string
	accessKeyId     string
	secretAccessKey string
}

func NewS3(bucket, key, region, accessKeyId, secretAccessKey string) *S3 {
	return &S3{
		bucket:          bucket,
		key:             key,
		region:          region,
		accessKeyId:     accessKeyId,
		secretAccessKey: secretAccessKey,
	}
}

func (s *S3) awsConfig() aws.Config {
	var awsConfig aws.Config

	if s.region != "" {
		awsConfig.Region = aws.String(s.region)
	}

	if s.accessKeyId != "" && s.secretAccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(s.accessKeyId, s.secretAccessKey, "")
	}

	return awsConfig
}

func (s *S3) session() *session.Session {
	awsConfig := s.awsConfig()
	return session.Must(session.NewSession(&awsConfig))
}

// Save uploads the artifact content. The object key gets the .gz suffix and
// the unique timestamp prefix applied the same way local artifact names do.
func (s *S3) Save(reader io.Reader, gzip bool, unique bool) error {
	uploader := s3manager.NewUploader(s.session())

	key := filenaming.EnsureFileName(s.key, gzip, unique)

	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   reader,
	})

	if err != nil {
		return fmt.Errorf("fail to upload fixture dump to s3://%s/%s, error: %w", s.bucket, key, err)
	}

	return nil
}

// GetContent fetches the artifact content of the configured key.
func (s *S3) GetContent() ([]byte, error) {
	client := s3Client.New(s.session())

	result, err := client.GetObject(&s3Client.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})

	if err != nil {
		return nil, fmt.Errorf("fail to fetch fixture dump from s3://%s/%s, error: %w", s.bucket, s.key, err)
	}

	defer func() {
		if err := result.Body.Close(); err != nil {
			slog.Error("fail to close s3 object body", slog.Any("error", err))
		}
	}()

	return io.ReadAll(result.Body)
}
