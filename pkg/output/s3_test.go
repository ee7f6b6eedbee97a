package output

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records the last PutObject call
type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected upload deadline")
	}
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Upload(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		key     string
		wantKey string
	}{
		{"no prefix", "", "render.png", "render.png"},
		{"prefix", "renders/2024", "render.png", "renders/2024/render.png"},
		{"prefix with trailing slash", "renders/", "thumb.jpg", "renders/thumb.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeS3{}
			uploader := newS3UploaderWithClient(fake, S3Config{Bucket: "images", Prefix: tt.prefix})

			data := []byte("png bytes")
			if err := uploader.Upload(context.Background(), tt.key, data, "image/png"); err != nil {
				t.Fatalf("Upload error: %v", err)
			}

			if got := aws.StringValue(fake.input.Bucket); got != "images" {
				t.Errorf("Bucket = %q, want images", got)
			}
			if got := aws.StringValue(fake.input.Key); got != tt.wantKey {
				t.Errorf("Key = %q, want %q", got, tt.wantKey)
			}
			if got := aws.StringValue(fake.input.ContentType); got != "image/png" {
				t.Errorf("ContentType = %q, want image/png", got)
			}
			if got := aws.Int64Value(fake.input.ContentLength); got != int64(len(data)) {
				t.Errorf("ContentLength = %d, want %d", got, len(data))
			}
			if string(fake.body) != string(data) {
				t.Errorf("Body = %q, want %q", fake.body, data)
			}
		})
	}
}

func TestS3Uploader_UploadError(t *testing.T) {
	putErr := errors.New("access denied")
	uploader := newS3UploaderWithClient(&fakeS3{err: putErr}, S3Config{Bucket: "images"})

	err := uploader.Upload(context.Background(), "render.png", []byte{1}, "image/png")
	if !errors.Is(err, putErr) {
		t.Errorf("Expected wrapped put error, got %v", err)
	}
}

func TestNewS3Uploader(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{}); !errors.Is(err, ErrNoBucket) {
		t.Errorf("Expected ErrNoBucket, got %v", err)
	}

	uploader, err := NewS3Uploader(S3Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "images",
		Prefix:    "renders",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := uploader.ObjectKey("a.png"); got != "renders/a.png" {
		t.Errorf("ObjectKey = %q, want renders/a.png", got)
	}
}

func TestS3ConfigFromEnv(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")
	t.Setenv("S3_BUCKET", "renders")

	want := S3Config{
		Endpoint:  "http://minio:9000",
		Region:    "eu-west-1",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "renders",
	}
	if got := S3ConfigFromEnv(); got != want {
		t.Errorf("S3ConfigFromEnv() = %+v, want %+v", got, want)
	}
}
