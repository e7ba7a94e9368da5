package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	drifterrors "github.com/driftlens/driftlens/internal/errors"
)

// Config holds object storage settings. Endpoint overrides the default AWS
// endpoint for LocalStack and other S3-compatible stores; credentials come
// from the standard AWS environment and shared config.
type Config struct {
	Endpoint string
	Bucket   string
	Prefix   string
	Region   string
}

// S3Uploader pushes report files to an S3 bucket for archival
type S3Uploader struct {
	client *s3.Client
	cfg    Config
}

// New creates an uploader from the given settings
func New(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, drifterrors.New(drifterrors.ErrorTypeConfiguration,
			"upload bucket is not configured").
			WithSolutions(
				"Set upload.bucket in the config file",
				"Pass --bucket on the command line",
			)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeUpload,
			"failed to load AWS configuration").
			WithCause(err.Error()).
			WithSolutions("Check AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// LocalStack and most S3-compatible stores require path-style
			// addressing
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{client: client, cfg: cfg}, nil
}

// Upload pushes a report file to the bucket under a timestamped key and
// returns the object URI. The key is derived from the upload time so
// repeated uploads never overwrite each other and the bucket keeps a full
// audit trail.
func (u *S3Uploader) Upload(ctx context.Context, reportPath string) (string, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return "", drifterrors.New(drifterrors.ErrorTypeFileSystem,
			fmt.Sprintf("cannot read report file %s", reportPath)).
			WithCause(err.Error())
	}

	if err := u.ensureBucket(ctx); err != nil {
		return "", err
	}

	key := u.ObjectKey(time.Now().UTC())
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"source-file": filepath.Base(reportPath),
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", drifterrors.New(drifterrors.ErrorTypeUpload,
			fmt.Sprintf("failed to upload report to s3://%s/%s", u.cfg.Bucket, key)).
			WithCause(err.Error()).
			WithSolutions(
				"Verify the bucket exists and credentials allow s3:PutObject",
				"For LocalStack, check that the endpoint is reachable",
			)
	}

	return fmt.Sprintf("s3://%s/%s", u.cfg.Bucket, key), nil
}

// ObjectKey builds the object key for a report uploaded at t
func (u *S3Uploader) ObjectKey(t time.Time) string {
	prefix := u.cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%sreport-%s.json", prefix, t.Format("2006-01-02-150405"))
}

// ensureBucket creates the target bucket if it does not exist yet. Bucket
// init scripts can be unreliable in demo environments, so an already-owned
// bucket is not an error.
func (u *S3Uploader) ensureBucket(ctx context.Context) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(u.cfg.Bucket)}
	if u.cfg.Region != "" && u.cfg.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(u.cfg.Region),
		}
	}

	_, err := u.client.CreateBucket(ctx, input)
	if err == nil {
		return nil
	}

	var owned *s3types.BucketAlreadyOwnedByYou
	var exists *s3types.BucketAlreadyExists
	if errors.As(err, &owned) || errors.As(err, &exists) {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			return nil
		}
	}

	return drifterrors.New(drifterrors.ErrorTypeUpload,
		fmt.Sprintf("failed to create bucket %s", u.cfg.Bucket)).
		WithCause(err.Error()).
		WithSolutions("Verify credentials allow s3:CreateBucket, or create the bucket manually")
}
