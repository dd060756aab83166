// Package media holds the cleanup hooks the cascade deleter calls when a
// comment or review with attachments is removed. A failed removal is logged
// by the caller and never blocks structural deletion.
package media

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Cleaner removes a stored media object by its public URL.
type Cleaner interface {
	Remove(ctx context.Context, mediaURL string) error
}

// NoopCleaner ignores every removal. Used when media storage is disabled.
type NoopCleaner struct{}

func (NoopCleaner) Remove(ctx context.Context, mediaURL string) error {
	return nil
}

// LocalCleaner deletes files from a local upload directory.
type LocalCleaner struct {
	Dir string
}

func NewLocalCleaner(dir string) *LocalCleaner {
	return &LocalCleaner{Dir: dir}
}

func (c *LocalCleaner) Remove(ctx context.Context, mediaURL string) error {
	name := path.Base(mediaURL)
	if name == "" || name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(c.Dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// S3Cleaner deletes objects from an S3 bucket. The object key is the URL path
// with the leading slash stripped.
type S3Cleaner struct {
	svc    *s3.S3
	bucket string
}

func NewS3Cleaner(region, bucket string) (*S3Cleaner, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return &S3Cleaner{svc: s3.New(sess), bucket: bucket}, nil
}

func (c *S3Cleaner) Remove(ctx context.Context, mediaURL string) error {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil
	}
	_, err = c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}
