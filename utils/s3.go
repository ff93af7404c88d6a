package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

var S3Client *s3.Client

func InitS3(logger *zap.Logger) error {
	endpoint := os.Getenv("S3_ENDPOINT_URL")
	accessKeyID := MustGetEnv("S3_ACCESS_KEY_ID")
	secretAccessKey := MustGetEnv("S3_SECRET_ACCESS_KEY")
	region := GetEnvOrDefault("S3_REGION", "us-east-1")

	sugar := logger.Sugar()
	sugar.Info("Initializing cloud storage service")

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	s3Options := []func(*s3.Options){
		func(o *s3.Options) {
			o.UsePathStyle = true
		},
	}

	if endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
		sugar.Info("Using custom storage endpoint configuration")
	} else {
		sugar.Info("Using default cloud storage configuration")
	}

	S3Client = s3.NewFromConfig(cfg, s3Options...)

	buckets, err := S3Client.ListBuckets(context.Background(), &s3.ListBucketsInput{})
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}
	sugar.Infow("Cloud storage service initialized successfully", "bucket_count", len(buckets.Buckets))
	return nil
}

// DownloadS3Object downloads an object from S3 and returns the data
func DownloadS3Object(ctx context.Context, bucket, key string) ([]byte, error) {
	if S3Client == nil {
		return nil, errors.New("s3 client is nil; call InitS3 first")
	}

	maxAttempts := getRetryMaxAttempts()
	retryDelay := getRetryDelaySeconds()
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := S3Client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				if err := sleepContext(ctx, time.Duration(retryDelay)*time.Second); err != nil {
					return nil, err
				}
			}
			continue
		}
		data, err := io.ReadAll(result.Body)
		result.Body.Close()
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				if err := sleepContext(ctx, time.Duration(retryDelay)*time.Second); err != nil {
					return nil, err
				}
			}
			continue
		}

		return data, nil
	}

	return nil, fmt.Errorf("failed to download object after %d attempts: %w", maxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// getRetryMaxAttempts returns the maximum number of retry attempts from env, default 3
func getRetryMaxAttempts() int {
	maxAttempts := GetEnvInt("S3_RETRY_MAX_ATTEMPTS", 3)
	if maxAttempts < 1 {
		return 3
	}
	return maxAttempts
}

// getRetryDelaySeconds returns the retry delay in seconds from env, default 20
func getRetryDelaySeconds() int {
	delay := GetEnvInt("S3_RETRY_DELAY_SECONDS", 20)
	if delay < 0 {
		return 20
	}
	return delay
}

// ParseS3URI parses "s3://bucket/key" into bucket + key.
func ParseS3URI(u string) (bucket, key string, _ error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 uri: %w", err)
	}
	if parsed.Scheme != "s3" || parsed.Host == "" || len(parsed.Path) < 2 {
		return "", "", fmt.Errorf("not an s3 uri: %s", u)
	}
	return parsed.Host, parsed.Path[1:], nil // trim leading '/'
}

// UploadFile stores src under key in the given bucket
func UploadFile(ctx context.Context, src io.Reader, bucket, key string) error {
	if S3Client == nil {
		return errors.New("s3Client is nil; call InitS3 first")
	}
	_, err := S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   src,
	})
	if err != nil {
		return fmt.Errorf("put object failed: %w", err)
	}
	return nil
}

// CorpusKey is the object key under which a job's corpus is stored
func CorpusKey(job string) string {
	return fmt.Sprintf("%s/%s_corpus.tsv", job, job)
}
