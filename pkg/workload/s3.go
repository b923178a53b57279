package workload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/loadboard/internal/errors"
)

// S3API is the subset of *s3.Client used by S3Source.
type S3API interface {
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads group fixtures stored under a bucket prefix.
//
//	client := s3.New(s3.Options{Region: "eu-central-1", Credentials: creds})
//	src := workload.NewS3Source(client, "loads", "groups/")
//	groups, err := src.Load(ctx)
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates a source for bucket/prefix.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Load fetches every fixture directly under the prefix. Objects in nested
// "directories" are skipped.
func (s *S3Source) Load(ctx context.Context) ([]Group, error) {
	keys, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	var fixtures []fixture
	seen := make(map[string]string)
	for _, key := range keys {
		f, err := s.fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[f.ID]; dup {
			return nil, errors.New("L013").
				WithLocation(s.uri(key), 0, 0).
				WithDetail("%q is also defined in %s", f.ID, s.uri(prev))
		}
		seen[f.ID] = key
		fixtures = append(fixtures, f)
	}
	if len(fixtures) == 0 {
		return nil, errors.New("L014").WithDetail("nothing under %s", s.uri(s.prefix))
	}
	return sortFixtures(fixtures), nil
}

func (s *S3Source) list(ctx context.Context) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.New("L030").WithDetail("list %s", s.uri(s.prefix)).Wrap(err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rest := strings.TrimPrefix(key, s.prefix)
			if strings.Contains(rest, "/") || !isFixture(path.Base(key)) {
				continue
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *S3Source) fetch(ctx context.Context, key string) (fixture, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fixture{}, errors.New("L030").WithDetail("get %s", s.uri(key)).Wrap(err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return fixture{}, errors.New("L030").WithDetail("read %s", s.uri(key)).Wrap(err)
	}
	return decodeFixture(&buf, s.uri(key))
}

func (s *S3Source) uri(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}
