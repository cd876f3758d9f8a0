// Package store moves compiled outputs and sources to and from S3.
package store

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/jsphweid/ams/constants"
	"github.com/pkg/errors"
)

const scheme = "s3://"

// Location is an object in a bucket.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return scheme + l.Bucket + "/" + l.Key
}

func IsS3(dest string) bool {
	return strings.HasPrefix(dest, scheme)
}

// ParseURL splits s3://bucket/key. Both parts are required.
func ParseURL(url string) (Location, error) {
	if !IsS3(url) {
		return Location{}, errors.Errorf("not an s3 url: %s", url)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(url, scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Location{}, errors.Errorf("s3 url needs a bucket and a key: %s", url)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

func newSession() (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(constants.GetAWSRegion()),
	}
	if endpoint := constants.GetS3Endpoint(); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		// local S3 servers do not resolve virtual-hosted buckets
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Could not create an AWS session")
	}
	return sess, nil
}

func Upload(ctx context.Context, loc Location, data []byte, contentType string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	uploader := s3manager.NewUploader(sess)
	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.Wrapf(err, "Could not upload to %s", loc)
	}
	return nil
}

func Download(ctx context.Context, loc Location) ([]byte, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	downloader := s3manager.NewDownloader(sess)
	buf := aws.NewWriteAtBuffer(nil)
	_, err = downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Could not download %s", loc)
	}
	return buf.Bytes(), nil
}
