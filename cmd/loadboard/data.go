package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/loadboard/internal/config"
	"github.com/vango-dev/loadboard/internal/errors"
	"github.com/vango-dev/loadboard/pkg/workload"
)

// AWS credential variables read by the S3 fixture source.
const (
	envAccessKey    = "AWS_ACCESS_KEY_ID"
	envSecretKey    = "AWS_SECRET_ACCESS_KEY"
	envSessionToken = "AWS_SESSION_TOKEN"
	envRegion       = "AWS_REGION"
)

// loadConfig reads loadboard.json and applies flag overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configDir)
	if err != nil {
		return nil, err
	}
	if flags.dataDir != "" {
		cfg.Data.Dir = flags.dataDir
		cfg.Data.S3 = config.S3Config{}
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadGroups reads the configured fixture source: a directory, a bucket or
// the bundled groups.
func loadGroups(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]workload.Group, error) {
	switch {
	case cfg.Data.Dir != "":
		logger.Info("loading fixtures", "dir", cfg.Data.Dir)
		return workload.LoadDir(os.DirFS(cfg.Data.Dir))
	case cfg.Data.S3.Bucket != "":
		logger.Info("loading fixtures", "bucket", cfg.Data.S3.Bucket, "prefix", cfg.Data.S3.Prefix)
		src := workload.NewS3Source(newS3Client(cfg.Data.S3), cfg.Data.S3.Bucket, cfg.Data.S3.Prefix)
		return src.Load(ctx)
	default:
		logger.Info("serving bundled fixtures")
		return workload.Default(), nil
	}
}

func newS3Client(c config.S3Config) *s3.Client {
	region := c.Region
	if region == "" {
		region = os.Getenv(envRegion)
	}
	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if c.Endpoint != "" {
		opts.BaseEndpoint = aws.String(c.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	key, secret := os.Getenv(envAccessKey), os.Getenv(envSecretKey)
	if key == "" || secret == "" {
		return aws.Credentials{}, errors.New("L030").
			WithDetail("%s and %s must be set", envAccessKey, envSecretKey)
	}
	return aws.Credentials{
		AccessKeyID:     key,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv(envSessionToken),
		Source:          "environment",
	}, nil
}
