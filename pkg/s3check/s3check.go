// Post-deploy smoke check against the S3 API of the deployed server.
package s3check

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// Check lists buckets on the given endpoint with the deployment credentials
// and returns a one-line summary. A successful round trip proves that TLS,
// authentication and the S3 API are all working, not just the liveness
// probe. caCert, when non-nil, is the PEM deployment certificate to trust;
// otherwise verification is skipped (self-signed deployment).
func Check(endpoint, accessKey, secretKey string, caCert []byte) (string, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: true}
	if caCert != nil {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return "", errors.New("deployment certificate is not valid PEM")
		}
		tlsConfig = &tls.Config{RootCAs: pool}
	}

	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(endpoint),
		Region:           aws.String("us-east-1"),
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "Failed to build S3 session")
	}

	return listBuckets(s3.New(sess))
}

func listBuckets(svc s3iface.S3API) (string, error) {
	out, err := svc.ListBuckets(&s3.ListBucketsInput{})
	if err != nil {
		return "", errors.Wrap(err, "S3 API check failed")
	}
	return fmt.Sprintf("S3 API reachable, %d bucket(s)", len(out.Buckets)), nil
}
