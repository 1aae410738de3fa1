package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3API is the subset of the S3 client used by S3Repository.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Settings describes an S3-compatible endpoint (AWS or MinIO).
type S3Settings struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// NewS3Client builds an S3 client with static credentials. A non-empty
// BaseEndpoint switches to path-style addressing, as MinIO expects.
func NewS3Client(ctx context.Context, s S3Settings) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(
			s.AccessKey,
			s.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Repository stores each credential as a JSON object "<prefix>/<hash>.json"
// in a bucket. Inserts are conditional (If-None-Match: *) so a duplicate hash
// is rejected by the service instead of silently overwritten.
type S3Repository struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Repository(client S3API, bucket, prefix string) *S3Repository {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = common.DefaultTable
	}
	return &S3Repository{client: client, bucket: bucket, prefix: prefix}
}

func (r *S3Repository) objectKey(hash string) string {
	return r.prefix + "/" + hash + ".json"
}

func (r *S3Repository) Insert(ctx context.Context, c *models.Credential) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(c.Hash)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if apiErrorCode(err) == "PreconditionFailed" {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("s3 error: %w", err)
	}
	return nil
}

func (r *S3Repository) FindByHash(ctx context.Context, hash string) (*models.Credential, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(hash)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) || apiErrorCode(err) == "NotFound" {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("s3 error: %w", err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read: %w", err)
	}
	c := &models.Credential{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return c, nil
}

// DeleteByHash removes the object; S3 reports success for absent keys.
func (r *S3Repository) DeleteByHash(ctx context.Context, hash string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(hash)),
	})
	if err != nil {
		return fmt.Errorf("s3 error: %w", err)
	}
	return nil
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
