package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the part of the S3 client the adapter uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	KeyPrefix       string
	ForcePathStyle  bool
	AccessKeyID     string
	SecretAccessKey string
}

// S3Storage maps the tree onto object keys. A folder is a zero-byte "path/" marker object;
// a file is an object at its path.
type S3Storage struct {
	client    S3API
	bucket    string
	keyPrefix string
}

// S3 accepts at most this many keys per DeleteObjects call.
const maxDeleteBatch = 1000

func NewS3Storage(client S3API, cfg S3Config) *S3Storage {
	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Storage{client: client, bucket: cfg.Bucket, keyPrefix: prefix}
}

// NewS3StorageFromConfig builds the client from the default AWS chain, overridden by cfg.
func NewS3StorageFromConfig(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return NewS3Storage(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
}

func (s *S3Storage) fileKey(p string) string {
	return s.keyPrefix + strings.Trim(p, "/")
}

func (s *S3Storage) dirKey(p string) string {
	return s.fileKey(p) + "/"
}

func (s *S3Storage) pathOf(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, s.keyPrefix), "/")
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "NoSuchKey") ||
		strings.Contains(errStr, "NotFound") ||
		strings.Contains(errStr, "404")
}

func (s *S3Storage) putMarker(ctx context.Context, key string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create folder marker %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) MkdirAll(ctx context.Context, p string) error {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i := range segments {
		if err := s.putMarker(ctx, s.dirKey(strings.Join(segments[:i+1], "/"))); err != nil {
			return err
		}
	}
	return nil
}

// Save buffers the body so the SDK can sign a seekable payload with a known length.
func (s *S3Storage) Save(ctx context.Context, p string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.fileKey(p)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to put object %s: %w", p, err)
	}
	return int64(len(data)), nil
}

func (s *S3Storage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, notExist(p)
		}
		return nil, fmt.Errorf("failed to get object %s: %w", p, err)
	}
	return out.Body, nil
}

func (s *S3Storage) Stat(ctx context.Context, p string) (Entry, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
	})
	if err == nil {
		return Entry{Path: p, Size: aws.ToInt64(head.ContentLength)}, nil
	}
	if !isNotFoundError(err) {
		return Entry{}, fmt.Errorf("failed to stat %s: %w", p, err)
	}

	// A folder exists if its marker, or anything below it, does.
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.dirKey(p)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to list %s: %w", p, err)
	}
	if len(out.Contents) == 0 {
		return Entry{}, notExist(p)
	}
	return Entry{Path: p, IsDir: true}, nil
}

func (s *S3Storage) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.Stat(ctx, p)
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *S3Storage) listObjects(ctx context.Context, prefix string) ([]types.Object, error) {
	var objects []types.Object
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				objects = append(objects, obj)
			}
		}
	}
	sort.Slice(objects, func(i, j int) bool { return *objects[i].Key < *objects[j].Key })
	return objects, nil
}

func (s *S3Storage) listKeys(ctx context.Context, prefix string) ([]string, error) {
	objects, err := s.listObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = *obj.Key
	}
	return keys, nil
}

func (s *S3Storage) copyKey(ctx context.Context, src, dst string) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + url.PathEscape(src)),
		Key:        aws.String(dst),
	})
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

func (s *S3Storage) deleteKeys(ctx context.Context, keys []string) error {
	for i := 0; i < len(keys); i += maxDeleteBatch {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(i+maxDeleteBatch, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-i)
		for _, key := range keys[i:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}
		result, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects: %w", err)
		}
		if len(result.Errors) > 0 {
			e := result.Errors[0]
			return fmt.Errorf("failed to delete %s: %s", aws.ToString(e.Key), aws.ToString(e.Message))
		}
	}
	return nil
}

// copyAll copies the object or folder at src to dst and returns the source keys it touched.
func (s *S3Storage) copyAll(ctx context.Context, src, dst string) ([]string, error) {
	entry, err := s.Stat(ctx, src)
	if err != nil {
		return nil, err
	}
	if ok, err := s.Exists(ctx, dst); err != nil {
		return nil, err
	} else if ok {
		return nil, fmt.Errorf("%s: %w", dst, ErrExist)
	}
	if !entry.IsDir {
		if err := s.copyKey(ctx, s.fileKey(src), s.fileKey(dst)); err != nil {
			return nil, err
		}
		return []string{s.fileKey(src)}, nil
	}

	srcPrefix, dstPrefix := s.dirKey(src), s.dirKey(dst)
	keys, err := s.listKeys(ctx, srcPrefix)
	if err != nil {
		return nil, err
	}
	if err := s.putMarker(ctx, dstPrefix); err != nil {
		return nil, err
	}
	for _, key := range keys {
		if key == srcPrefix {
			continue
		}
		if err := s.copyKey(ctx, key, dstPrefix+strings.TrimPrefix(key, srcPrefix)); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (s *S3Storage) Rename(ctx context.Context, oldPath, newPath string) error {
	if oldPath == newPath {
		_, err := s.Stat(ctx, oldPath)
		return err
	}
	keys, err := s.copyAll(ctx, oldPath, newPath)
	if err != nil {
		return err
	}
	return s.deleteKeys(ctx, keys)
}

func (s *S3Storage) Copy(ctx context.Context, src, dst string) error {
	_, err := s.copyAll(ctx, src, dst)
	return err
}

func (s *S3Storage) Remove(ctx context.Context, p string) error {
	entry, err := s.Stat(ctx, p)
	if err != nil {
		return err
	}
	if entry.IsDir {
		return s.RemoveAll(ctx, p)
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fileKey(p)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

func (s *S3Storage) RemoveAll(ctx context.Context, p string) error {
	entry, err := s.Stat(ctx, p)
	if err != nil {
		return err
	}
	if !entry.IsDir {
		return s.deleteKeys(ctx, []string{s.fileKey(p)})
	}
	keys, err := s.listKeys(ctx, s.dirKey(p))
	if err != nil {
		return err
	}
	return s.deleteKeys(ctx, keys)
}

func (s *S3Storage) Walk(ctx context.Context, root string, fn func(Entry) error) error {
	rootPrefix := s.dirKey(root)
	objects, err := s.listObjects(ctx, rootPrefix)
	if err != nil {
		return err
	}

	// Folders are implied by deeper keys even without a marker.
	entries := map[string]Entry{}
	for _, obj := range objects {
		key := *obj.Key
		rel := strings.TrimPrefix(key, rootPrefix)
		if rel == "" {
			continue
		}
		segments := strings.Split(strings.TrimSuffix(rel, "/"), "/")
		for i := 1; i < len(segments); i++ {
			dir := s.pathOf(rootPrefix + strings.Join(segments[:i], "/"))
			entries[dir] = Entry{Path: dir, IsDir: true}
		}
		p := s.pathOf(key)
		if strings.HasSuffix(key, "/") {
			entries[p] = Entry{Path: p, IsDir: true}
		} else if _, ok := entries[p]; !ok {
			entries[p] = Entry{Path: p, Size: aws.ToInt64(obj.Size)}
		}
	}

	paths := make([]string, 0, len(entries))
	for p := range entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := fn(entries[p]); err != nil {
			return err
		}
	}
	return nil
}
