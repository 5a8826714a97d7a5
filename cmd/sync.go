package cmd

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prestafix/fixturedump/env"
	"github.com/prestafix/fixturedump/fixture"
	"github.com/prestafix/fixturedump/storage/local"
	"github.com/prestafix/fixturedump/storage/s3"
)

var (
	s3Bucket, s3Key, s3Region, s3AccessKeyId, s3SecretAccessKey string
	pushGzip, pushUnique                                        bool
)

// resolveS3 builds the s3 storage from the flags, falling back to the AWS_*
// environment variables when no flag override is given.
func resolveS3(key string) (*s3.S3, error) {
	region, accessKeyId, secretAccessKey := s3Region, s3AccessKeyId, s3SecretAccessKey

	if region == "" && accessKeyId == "" && secretAccessKey == "" && os.Getenv(env.AWS_ACCESS_KEY_ID) != "" {
		values, err := env.NewEnvResolver(env.WithAWS()).Resolve()
		if err != nil {
			return nil, err
		}

		credentials := values.AWSCredentials
		region = credentials.Region
		accessKeyId = credentials.AccessKeyID
		secretAccessKey = credentials.SecretAccessKey
	}

	return s3.NewS3(s3Bucket, key, region, accessKeyId, secretAccessKey), nil
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the full fixture dump to a s3 bucket so other test runners can share it",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOfflineManager(func(manager *fixture.Manager) error {
			if err := manager.CheckDump(); err != nil {
				return err
			}

			dumpFile, err := os.Open(manager.DumpFilePath())
			if err != nil {
				return fmt.Errorf("fail to open dump file %s, error: %v", manager.DumpFilePath(), err)
			}

			defer func() {
				if err := dumpFile.Close(); err != nil {
					slog.Error("fail to close dump file", slog.Any("error", err))
				}
			}()

			var reader io.Reader = dumpFile

			if pushGzip {
				var buf bytes.Buffer

				gzipWriter := gzip.NewWriter(&buf)
				if _, err := io.Copy(gzipWriter, dumpFile); err != nil {
					return fmt.Errorf("fail to compress dump file, error: %v", err)
				}

				if err := gzipWriter.Close(); err != nil {
					return fmt.Errorf("fail to finish compressing dump file, error: %v", err)
				}

				reader = &buf
			}

			key := s3Key
			if key == "" {
				key = filepath.Base(manager.DumpFilePath())
			}

			slog.Debug("pushing fixture dump", slog.String("bucket", s3Bucket), slog.String("key", key))

			s3Storage, err := resolveS3(key)
			if err != nil {
				return err
			}

			return s3Storage.Save(reader, pushGzip, pushUnique)
		})
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the full fixture dump from a s3 bucket to the local dump file",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOfflineManager(func(manager *fixture.Manager) error {
			key := s3Key
			if key == "" {
				key = filepath.Base(manager.DumpFilePath())
			}

			slog.Debug("pulling fixture dump", slog.String("bucket", s3Bucket), slog.String("key", key))

			s3Storage, err := resolveS3(key)
			if err != nil {
				return err
			}

			content, err := s3Storage.GetContent()
			if err != nil {
				return err
			}

			if strings.HasSuffix(key, ".gz") {
				gzipReader, err := gzip.NewReader(bytes.NewReader(content))
				if err != nil {
					return fmt.Errorf("fail to create a gzip reader, error: %v", err)
				}

				defer func() {
					if err := gzipReader.Close(); err != nil {
						slog.Error("fail to close gzip reader", slog.Any("error", err))
					}
				}()

				content, err = io.ReadAll(gzipReader)
				if err != nil {
					return fmt.Errorf("fail to decompress fixture dump, error: %v", err)
				}
			}

			localStorage := &local.Local{Path: manager.DumpFilePath()}
			return localStorage.Save(bytes.NewReader(content), false)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{pushCmd, pullCmd} {
		cmd.Flags().StringVarP(&s3Bucket, "s3-bucket", "b", "", "the s3 bucket that stores shared fixture dumps (required)")
		cmd.Flags().StringVarP(&s3Key, "s3-key", "k", "", "the s3 object key, defaults to the dump file name (optional)")
		cmd.Flags().StringVarP(&s3Region, "s3-region", "r", "", "the s3 region, falls back to the AWS_* environment variables (optional)")
		cmd.Flags().StringVar(&s3AccessKeyId, "s3-access-key-id", "", "s3 access key id, falls back to the AWS_* environment variables (optional)")
		cmd.Flags().StringVar(&s3SecretAccessKey, "s3-secret-access-key", "", "s3 secret access key, falls back to the AWS_* environment variables (optional)")
		cmd.MarkFlagRequired("s3-bucket")
	}

	pushCmd.Flags().BoolVar(&pushGzip, "gzip", false, "gzip the dump before uploading (optional)")
	pushCmd.Flags().BoolVar(&pushUnique, "unique", false, "prefix the s3 key with a timestamp (optional)")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
}
