package s3check

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	buckets []string
	err     error
}

func (f *fakeS3) ListBuckets(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &s3.ListBucketsOutput{}
	for _, name := range f.buckets {
		out.Buckets = append(out.Buckets, &s3.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

func TestListBuckets(t *testing.T) {
	summary, err := listBuckets(&fakeS3{buckets: []string{"backups", "media"}})
	require.Nil(t, err)
	assert.Equal(t, "S3 API reachable, 2 bucket(s)", summary)
}

func TestListBucketsEmpty(t *testing.T) {
	summary, err := listBuckets(&fakeS3{})
	require.Nil(t, err)
	assert.Equal(t, "S3 API reachable, 0 bucket(s)", summary)
}

func TestListBucketsError(t *testing.T) {
	_, err := listBuckets(&fakeS3{err: errors.New("SignatureDoesNotMatch")})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "S3 API check failed")
}

func TestCheckRejectsBadPEM(t *testing.T) {
	_, err := Check("https://localhost:9000", "user", "password", []byte("not pem"))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "not valid PEM")
}
