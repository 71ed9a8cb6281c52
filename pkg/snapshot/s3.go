package snapshot

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/hyperoop/internal/errors"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store keeps snapshots as objects under a key prefix.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := snapshot.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "snapshots/")
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a store over bucket. The prefix is prepended verbatim
// to every key.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Store) key(name string) string {
	return s.prefix + name + fileExt
}

// Save uploads markup.
func (s *S3Store) Save(ctx context.Context, name string, markup []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(markup),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"snapshot-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New("E021").WithDetailf("s3 put %s/%s", s.bucket, s.key(name)).Wrap(err)
	}
	return nil
}

// Load downloads a snapshot.
func (s *S3Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if stderrors.As(err, &noKey) {
			return nil, errors.New("E020").WithDetailf("s3://%s/%s", s.bucket, s.key(name))
		}
		return nil, errors.New("E021").WithDetailf("s3 get %s/%s", s.bucket, s.key(name)).Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	return data, nil
}

// Delete removes a snapshot. S3 deletes of missing keys succeed.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return errors.New("E021").WithDetailf("s3 delete %s/%s", s.bucket, s.key(name)).Wrap(err)
	}
	return nil
}

// List pages through the prefix and returns snapshot names.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.New("E021").WithDetailf("s3 list %s/%s", s.bucket, s.prefix).Wrap(err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if strings.Contains(key, "/") || !strings.HasSuffix(key, fileExt) {
				continue
			}
			names = append(names, strings.TrimSuffix(key, fileExt))
		}
	}
	sort.Strings(names)
	return names, nil
}
