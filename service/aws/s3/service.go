// Package s3 exposes AWS S3 bucket and object operations as tools.
package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mcpsuite/aws-mcp/service"
	"github.com/mcpsuite/aws-mcp/service/awscfg"
)

// Name is the registry key of this service.
const Name = "aws/s3"

// maxBodyBytes caps how much of an object getObject returns by default so
// that a single tool call cannot flood the agent context.
const maxBodyBytes = 256 * 1024

// API is the subset of the S3 client the tools call.
type API interface {
	ListBuckets(ctx context.Context, params *awss3.ListBucketsInput, optFns ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// Presigner issues pre-signed object URLs; satisfied by awss3.PresignClient.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Service implements service.Service for S3.
type Service struct {
	*service.Base
	provider *awscfg.Provider

	once      sync.Once
	api       API
	presigner Presigner
	apiErr    error
}

// New creates the service; the underlying client is built lazily from the
// shared provider on first call.
func New(provider *awscfg.Provider) *Service {
	s := &Service{provider: provider}
	s.Base = service.NewBase(Name, s.methods()...)
	return s
}

// NewWithAPI wires pre-built clients, used by tests.
func NewWithAPI(api API, presigner Presigner) *Service {
	s := &Service{api: api, presigner: presigner}
	s.Base = service.NewBase(Name, s.methods()...)
	return s
}

func (s *Service) client(ctx context.Context) (API, error) {
	s.once.Do(func() {
		if s.api != nil {
			return
		}
		cfg, err := s.provider.Config(ctx)
		if err != nil {
			s.apiErr = err
			return
		}
		cli := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
			// Custom endpoints (localstack, minio) require path-style access.
			if s.provider.Endpoint() != "" {
				o.UsePathStyle = true
			}
		})
		s.api = cli
		s.presigner = awss3.NewPresignClient(cli)
	})
	return s.api, s.apiErr
}

func (s *Service) presignClient(ctx context.Context) (Presigner, error) {
	if _, err := s.client(ctx); err != nil {
		return nil, err
	}
	return s.presigner, nil
}

type Bucket struct {
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type ListBucketsInput struct{}

type ListBucketsOutput struct {
	Buckets []Bucket `json:"buckets"`
	Count   int      `json:"count"`
}

type Object struct {
	Key          string     `json:"key"`
	Size         int64      `json:"size"`
	ETag         string     `json:"etag,omitempty"`
	StorageClass string     `json:"storageClass,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

type ListObjectsInput struct {
	Bucket            string `json:"bucket"`
	Prefix            string `json:"prefix,omitempty"`
	MaxKeys           int32  `json:"maxKeys,omitempty"`
	ContinuationToken string `json:"continuationToken,omitempty"`
}

type ListObjectsOutput struct {
	Objects               []Object `json:"objects"`
	Count                 int      `json:"count"`
	IsTruncated           bool     `json:"isTruncated"`
	NextContinuationToken string   `json:"nextContinuationToken,omitempty"`
}

type GetObjectInput struct {
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
	MaxBytes int64  `json:"maxBytes,omitempty"`
}

type GetObjectOutput struct {
	Body          string     `json:"body"`
	Base64Encoded bool       `json:"base64Encoded"`
	Truncated     bool       `json:"truncated"`
	ContentType   string     `json:"contentType,omitempty"`
	ContentLength int64      `json:"contentLength"`
	LastModified  *time.Time `json:"lastModified,omitempty"`
}

type PutObjectInput struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	Body        string `json:"body"`
	ContentType string `json:"contentType,omitempty"`
}

type PutObjectOutput struct {
	ETag string `json:"etag,omitempty"`
}

type DeleteObjectInput struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type DeleteObjectOutput struct {
	Deleted bool `json:"deleted"`
}

type PresignGetObjectInput struct {
	Bucket        string `json:"bucket"`
	Key           string `json:"key"`
	ExpirySeconds int64  `json:"expirySeconds,omitempty"`
}

type PresignGetObjectOutput struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"`
}

func (s *Service) methods() []service.Method {
	return []service.Method{
		service.NewMethod("listBuckets",
			"List all S3 buckets owned by the caller",
			s.listBuckets),
		service.NewMethod("listObjects",
			"List objects in an S3 bucket, optionally filtered by key prefix",
			s.listObjects),
		service.NewMethod("getObject",
			"Download an S3 object; binary content is returned base64-encoded",
			s.getObject),
		service.NewMethod("putObject",
			"Upload a text body as an S3 object",
			s.putObject),
		service.NewMethod("deleteObject",
			"Delete a single S3 object",
			s.deleteObject),
		service.NewMethod("presignGetObject",
			"Create a temporary pre-signed download URL for an S3 object",
			s.presignGetObject),
	}
}

func (s *Service) listBuckets(ctx context.Context, _ *ListBucketsInput) (*ListBucketsOutput, error) {
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cli.ListBuckets(ctx, &awss3.ListBucketsInput{})
	if err != nil {
		return nil, awscfg.APIError("s3.ListBuckets", err)
	}
	out := &ListBucketsOutput{Buckets: make([]Bucket, 0, len(res.Buckets))}
	for _, b := range res.Buckets {
		out.Buckets = append(out.Buckets, Bucket{
			Name:      aws.ToString(b.Name),
			CreatedAt: b.CreationDate,
		})
	}
	out.Count = len(out.Buckets)
	return out, nil
}

func (s *Service) listObjects(ctx context.Context, in *ListObjectsInput) (*ListObjectsOutput, error) {
	if in.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awss3.ListObjectsV2Input{Bucket: aws.String(in.Bucket)}
	if in.Prefix != "" {
		params.Prefix = aws.String(in.Prefix)
	}
	if in.MaxKeys > 0 {
		params.MaxKeys = aws.Int32(in.MaxKeys)
	}
	if in.ContinuationToken != "" {
		params.ContinuationToken = aws.String(in.ContinuationToken)
	}
	res, err := cli.ListObjectsV2(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("s3.ListObjectsV2", err)
	}
	out := &ListObjectsOutput{
		Objects:               make([]Object, 0, len(res.Contents)),
		IsTruncated:           aws.ToBool(res.IsTruncated),
		NextContinuationToken: aws.ToString(res.NextContinuationToken),
	}
	for _, o := range res.Contents {
		out.Objects = append(out.Objects, Object{
			Key:          aws.ToString(o.Key),
			Size:         aws.ToInt64(o.Size),
			ETag:         aws.ToString(o.ETag),
			StorageClass: string(o.StorageClass),
			LastModified: o.LastModified,
		})
	}
	out.Count = len(out.Objects)
	return out, nil
}

func (s *Service) getObject(ctx context.Context, in *GetObjectInput) (*GetObjectOutput, error) {
	if in.Bucket == "" || in.Key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	res, err := cli.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
	})
	if err != nil {
		return nil, awscfg.APIError("s3.GetObject", err)
	}
	defer res.Body.Close()

	limit := in.MaxBytes
	if limit <= 0 {
		limit = maxBodyBytes
	}
	// Read one extra byte to detect truncation.
	data, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}
	truncated := int64(len(data)) > limit
	if truncated {
		data = data[:limit]
	}

	out := &GetObjectOutput{
		Truncated:     truncated,
		ContentType:   aws.ToString(res.ContentType),
		ContentLength: aws.ToInt64(res.ContentLength),
		LastModified:  res.LastModified,
	}
	if utf8.Valid(data) {
		out.Body = string(data)
	} else {
		out.Body = base64.StdEncoding.EncodeToString(data)
		out.Base64Encoded = true
	}
	return out, nil
}

func (s *Service) putObject(ctx context.Context, in *PutObjectInput) (*PutObjectOutput, error) {
	if in.Bucket == "" || in.Key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	params := &awss3.PutObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
		Body:   bytes.NewReader([]byte(in.Body)),
	}
	if in.ContentType != "" {
		params.ContentType = aws.String(in.ContentType)
	}
	res, err := cli.PutObject(ctx, params)
	if err != nil {
		return nil, awscfg.APIError("s3.PutObject", err)
	}
	return &PutObjectOutput{ETag: aws.ToString(res.ETag)}, nil
}

func (s *Service) deleteObject(ctx context.Context, in *DeleteObjectInput) (*DeleteObjectOutput, error) {
	if in.Bucket == "" || in.Key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	cli, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	_, err = cli.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
	})
	if err != nil {
		return nil, awscfg.APIError("s3.DeleteObject", err)
	}
	return &DeleteObjectOutput{Deleted: true}, nil
}

func (s *Service) presignGetObject(ctx context.Context, in *PresignGetObjectInput) (*PresignGetObjectOutput, error) {
	if in.Bucket == "" || in.Key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	presigner, err := s.presignClient(ctx)
	if err != nil {
		return nil, err
	}
	expiry := time.Duration(in.ExpirySeconds) * time.Second
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	req, err := presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
	}, awss3.WithPresignExpires(expiry))
	if err != nil {
		return nil, awscfg.APIError("s3.PresignGetObject", err)
	}
	return &PresignGetObjectOutput{URL: req.URL, ExpiresIn: int64(expiry / time.Second)}, nil
}
