package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps uploads in an S3 bucket under a key prefix. References
// stay in the same "/uploads/<name>" form as the disk backend; the site
// fronts the bucket with a CDN path rewrite.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store builds a store using the ambient AWS credential chain.
func NewS3Store(ctx context.Context, bucket, prefix string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *S3Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if name != path.Base(name) {
		return "", fmt.Errorf("invalid upload name: %q", name)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put upload object: %w", err)
	}
	return RefPrefix + name, nil
}

func (s *S3Store) Remove(ctx context.Context, ref string) error {
	name, err := nameFromRef(ref)
	if err != nil {
		return err
	}

	// DeleteObject is idempotent; deleting an absent key succeeds.
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete upload object: %w", err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]StoredFile, error) {
	var out []StoredFile

	in := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.prefix != "" {
		in.Prefix = aws.String(s.prefix + "/")
	}

	p := s3.NewListObjectsV2Paginator(s.client, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list upload objects: %w", err)
		}
		for _, obj := range page.Contents {
			f := StoredFile{Ref: RefPrefix + path.Base(aws.ToString(obj.Key))}
			if obj.LastModified != nil {
				f.ModTime = *obj.LastModified
			}
			out = append(out, f)
		}
	}
	return out, nil
}
