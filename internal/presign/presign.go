// Package presign generates presigned S3 PUT URLs for uploading files
// without distributing credentials. Signing is local; no request is sent
// to S3 until the returned URL is used.
package presign

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	apperrors "github.com/loupecli/loupe/internal/errors"
)

// putObjectPresigner is the subset of *s3.PresignClient used by Signer.
// Tests inject a fake.
type putObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Signer produces presigned upload URLs for a single AWS configuration.
type Signer struct {
	client putObjectPresigner
}

// NewSigner creates a Signer from an AWS config.
func NewSigner(cfg aws.Config) *Signer {
	return &Signer{client: s3.NewPresignClient(s3.NewFromConfig(cfg))}
}

func newSigner(client putObjectPresigner) *Signer {
	return &Signer{client: client}
}

// UploadURL returns a presigned PUT URL for bucket/key valid for expires.
func (s *Signer) UploadURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("bucket required")
	}
	if key == "" {
		return "", fmt.Errorf("object key required")
	}
	if expires <= 0 {
		return "", fmt.Errorf("expiry must be positive, got %s", expires)
	}

	req, err := s.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", apperrors.Wrapf(err, "presign put s3://%s/%s", bucket, key)
	}

	return req.URL, nil
}

// DateKeyPrefix returns the yyyy/mm/dd/ object key prefix used to prefill
// the key prompt.
func DateKeyPrefix(now time.Time) string {
	return now.Format("2006/01/02") + "/"
}

// CurlCommand returns a ready-to-run upload command for the presigned URL.
func CurlCommand(file, url string) string {
	return fmt.Sprintf(`curl --location --retry 3 --retry-connrefused --request PUT --upload-file %q %q`, file, url)
}
