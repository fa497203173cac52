// Package r2 archives uploaded PDFs to an S3-compatible bucket (Cloudflare
// R2 layout). The archive is optional: when the environment is not fully
// configured NewClient returns a nil client and uploads are skipped.
package r2

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client holds the configuration for the archive bucket.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	log        *zap.Logger
}

// NewClient creates an archive client from the environment. It returns
// (nil, nil) when CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME, R2_ACCESS_KEY_ID or
// R2_SECRET_ACCESS_KEY is missing, so the service runs with archiving off.
func NewClient(log *zap.Logger) (*Client, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	bucketName := os.Getenv("R2_BUCKET_NAME")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")

	if accountID == "" || bucketName == "" || accessKeyID == "" || secretAccessKey == "" {
		log.Warn("R2 environment not fully configured, upload archiving disabled")
		return nil, nil
	}

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	log.Info("R2 archive client initialized", zap.String("bucket", bucketName))
	return &Client{
		s3Client:   s3.NewFromConfig(cfg),
		bucketName: bucketName,
		log:        log,
	}, nil
}

// Archive stores the original upload under uploads/<entryID>/<filename> and
// returns the object key. Safe to call on a nil client.
func (c *Client) Archive(ctx context.Context, entryID uuid.UUID, filename string, content io.Reader) (string, error) {
	if c == nil || c.s3Client == nil {
		return "", fmt.Errorf("archive client not initialized")
	}

	objectKey := fmt.Sprintf("uploads/%s/%s", entryID.String(), filename)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive upload (key: %s): %w", objectKey, err)
	}

	c.log.Info("archived upload", zap.String("key", objectKey))
	return objectKey, nil
}
