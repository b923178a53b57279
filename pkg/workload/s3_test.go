package workload

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/loadboard/internal/errors"
)

type fakeS3 struct {
	objects map[string][]byte
	listErr error
	gets    []string
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListObjectsV2Output{}
	for k := range f.objects {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.gets = append(f.gets, key)
	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3SourceLoad(t *testing.T) {
	a, b := groups("a", "b")[0], groups("a", "b")[1]
	fake := &fakeS3{objects: map[string][]byte{
		"groups/a.yaml":     yamlFixture(t, a, 2),
		"groups/b.yaml":     yamlFixture(t, b, 1),
		"groups/README.md":  []byte("skip"),
		"groups/old/a.yaml": []byte("skip"),
	}}

	gs, err := NewS3Source(fake, "loads", "groups/").Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gs) != 2 || gs[0].ID != "b" || gs[1].ID != "a" {
		t.Errorf("groups = %v", gs)
	}
	if len(fake.gets) != 2 {
		t.Errorf("fetched %v, want only the two top-level fixtures", fake.gets)
	}
}

func TestS3SourceErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3Source(&fakeS3{listErr: stderrors.New("denied")}, "b", "").Load(ctx)
	if errors.Code(err) != "L030" {
		t.Errorf("list failure: err = %v, want L030", err)
	}

	_, err = NewS3Source(&fakeS3{}, "b", "p/").Load(ctx)
	if errors.Code(err) != "L014" {
		t.Errorf("empty prefix: err = %v, want L014", err)
	}

	bad := &fakeS3{objects: map[string][]byte{"x.yaml": []byte("id: [")}}
	_, err = NewS3Source(bad, "b", "").Load(ctx)
	le := errors.FromError(err, "")
	if le == nil || le.Code != "L011" || le.Location.File != "s3://b/x.yaml" {
		t.Errorf("bad fixture: err = %v", err)
	}
}
