package presign

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticConfig returns an AWS config with fixed credentials. Presigning is
// purely local, so no endpoint is ever contacted.
func staticConfig() aws.Config {
	return aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIAEXAMPLE", "secret", ""),
	}
}

func TestSigner_UploadURL(t *testing.T) {
	signer := NewSigner(staticConfig())

	rawURL, err := signer.UploadURL(context.Background(), "my-bucket", "2026/08/30/report.pdf", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(rawURL)
	require.NoError(t, err)

	assert.Contains(t, u.Host, "my-bucket")
	assert.Contains(t, u.Path, "2026/08/30/report.pdf")

	q := u.Query()
	assert.Equal(t, "3600", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
	assert.Contains(t, q.Get("X-Amz-Credential"), "AKIAEXAMPLE")
}

func TestSigner_UploadURL_Validation(t *testing.T) {
	signer := NewSigner(staticConfig())
	ctx := context.Background()

	_, err := signer.UploadURL(ctx, "", "key", time.Hour)
	assert.Error(t, err)

	_, err = signer.UploadURL(ctx, "bucket", "", time.Hour)
	assert.Error(t, err)

	_, err = signer.UploadURL(ctx, "bucket", "key", 0)
	assert.Error(t, err)
}

type fakePresigner struct {
	expires time.Duration
}

func (f *fakePresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := &s3.PresignOptions{}
	for _, fn := range optFns {
		fn(opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://example.com/signed"}, nil
}

func TestSigner_UploadURL_PassesExpiry(t *testing.T) {
	fake := &fakePresigner{}
	signer := newSigner(fake)

	_, err := signer.UploadURL(context.Background(), "bucket", "key", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, fake.expires)
}

func TestDateKeyPrefix(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026/08/30/", DateKeyPrefix(now))

	// Single-digit months and days are zero-padded
	now = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026/01/05/", DateKeyPrefix(now))
}

func TestCurlCommand(t *testing.T) {
	cmd := CurlCommand("report.pdf", "https://example.com/signed?sig=abc")

	assert.True(t, strings.HasPrefix(cmd, "curl --location --retry 3 --retry-connrefused --request PUT"))
	assert.Contains(t, cmd, `--upload-file "report.pdf"`)
	assert.Contains(t, cmd, `"https://example.com/signed?sig=abc"`)
}
