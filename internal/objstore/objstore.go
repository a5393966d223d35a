// Package objstore stores raw resume files in an S3-compatible bucket.
// The default endpoint layout is Cloudflare R2, a custom endpoint works
// for any other S3 provider.
package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// ErrNotFound is returned when the requested object key does not exist
// in the bucket.
var ErrNotFound = errors.New("object not found")

type Config struct {
	AccountID     string
	Bucket        string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	PublicBaseURL string
}

// Store wraps one bucket on one endpoint. Safe for concurrent use.
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// New builds the S3 client with static credentials and region "auto".
// An empty Endpoint derives the R2 endpoint from the account ID.
func New(ctx context.Context, cfg Config) (*Store, error) {
	endpoint := Endpoint(cfg.AccountID, cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("object store needs an account id or an explicit endpoint")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Endpoint resolves the service endpoint: an explicit one wins, else the
// Cloudflare R2 endpoint for the account.
func Endpoint(accountID, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if accountID == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
}

// ResumeKey is the object key for one uploaded resume. The ID prefix
// keeps duplicate filenames apart; the filename is reduced to its base
// so upload names cannot traverse.
func ResumeKey(id uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s", id, name)
}

// Provider names the storage backend recorded with each resume row.
func (s *Store) Provider() string {
	return "r2"
}

// URL is the public URL for a key, empty when no public base is
// configured.
func (s *Store) URL(key string) string {
	if s.publicBaseURL == "" {
		return ""
	}
	return s.publicBaseURL + "/" + key
}

func (s *Store) Upload(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
