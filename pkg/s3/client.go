// pkg/s3/client.go
package s3

import (
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"cloudvault-api/pkg/config"
)

var (
	// Global S3 client instance
	client     *Client
	clientOnce sync.Once
)

// Client wraps S3 functionality
type Client struct {
	s3Client   *s3.S3
	bucketName string
}

// NewClient initializes a new S3 client
func NewClient(config *config.S3Config) (*Client, error) {
	// Create the S3 connection
	s3Client, err := NewS3Connection(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		s3Client:   s3Client,
		bucketName: config.BucketName,
	}, nil
}

// InitS3 initializes the global S3 client instance
func InitS3(s3Config *config.S3Config) error {
	var err error
	clientOnce.Do(func() {
		client, err = NewClient(s3Config)
	})
	return err
}

// GetS3Client returns the global S3 client instance
func GetS3Client() *Client {
	return client
}

// FileObjectKey builds the object key for a user's stored file
func FileObjectKey(userID, fileID string) string {
	return fmt.Sprintf("users/%s/files/%s", userID, fileID)
}

// ThumbnailObjectKey builds the object key for a file thumbnail
func ThumbnailObjectKey(userID, fileID, size string) string {
	return fmt.Sprintf("users/%s/thumbnails/%s/%s", userID, fileID, size)
}

// CreateUserBaseDirectories sets up the initial directory structure for a new user
func (c *Client) CreateUserBaseDirectories(userID string) error {
	directories := []string{
		fmt.Sprintf("users/%s/", userID),
		fmt.Sprintf("users/%s/files/", userID),
		fmt.Sprintf("users/%s/thumbnails/", userID),
	}

	for _, dir := range directories {
		if err := c.createEmptyDirectory(dir); err != nil {
			return err
		}
	}

	return nil
}

// createEmptyDirectory creates an empty directory marker in S3
func (c *Client) createEmptyDirectory(path string) error {
	// Ensure path ends with a slash
	if path[len(path)-1] != '/' {
		path = path + "/"
	}

	// Put an empty object to create the "directory"
	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(path),
	})

	return err
}

// GetUploadPresignedURL generates a presigned URL for uploading an object
func (c *Client) GetUploadPresignedURL(key string, contentType string, expiresIn time.Duration) (string, error) {
	// Create a request for the specified object
	req, _ := c.s3Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})

	// Generate a presigned URL with an expiration time
	url, err := req.Presign(expiresIn)
	if err != nil {
		return "", err
	}

	return url, nil
}

// GetDownloadPresignedURL generates a presigned URL for downloading an object
func (c *Client) GetDownloadPresignedURL(key string, expiresIn time.Duration) (string, error) {
	// Create a request for the specified object
	req, _ := c.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})

	// Generate a presigned URL with an expiration time
	url, err := req.Presign(expiresIn)
	if err != nil {
		return "", err
	}

	return url, nil
}

// PrepareFileUpload returns a presigned URL for uploading a user's file
func (c *Client) PrepareFileUpload(userID, fileID, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Presigned URL for upload, valid for 15 minutes
	uploadURL, err := c.GetUploadPresignedURL(FileObjectKey(userID, fileID), contentType, 15*time.Minute)
	if err != nil {
		return "", err
	}

	return uploadURL, nil
}

// GetFileDownloadURL returns a presigned URL for downloading a user's file
func (c *Client) GetFileDownloadURL(userID, fileID string) (string, error) {
	// Presigned URL for download, valid for 15 minutes
	downloadURL, err := c.GetDownloadPresignedURL(FileObjectKey(userID, fileID), 15*time.Minute)
	if err != nil {
		return "", err
	}

	return downloadURL, nil
}

// PrepareThumbnailUpload returns a presigned URL for thumbnail upload
func (c *Client) PrepareThumbnailUpload(userID, fileID, size string) (string, error) {
	// size can be "small", "medium", "large"
	thumbnailPath := ThumbnailObjectKey(userID, fileID, size)

	// Presigned URL for upload, valid for 15 minutes
	uploadURL, err := c.GetUploadPresignedURL(thumbnailPath, "image/jpeg", 15*time.Minute)
	if err != nil {
		return "", err
	}

	return uploadURL, nil
}

// GetThumbnailDownloadURL returns a presigned URL for downloading a thumbnail
func (c *Client) GetThumbnailDownloadURL(userID, fileID, size string) (string, error) {
	thumbnailPath := ThumbnailObjectKey(userID, fileID, size)

	// Presigned URL for download, valid for 15 minutes
	downloadURL, err := c.GetDownloadPresignedURL(thumbnailPath, 15*time.Minute)
	if err != nil {
		return "", err
	}

	return downloadURL, nil
}

// ObjectSize returns the size in bytes of a stored object
func (c *Client) ObjectSize(key string) (int64, error) {
	head, err := c.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, err
	}

	if head.ContentLength == nil {
		return 0, nil
	}

	return *head.ContentLength, nil
}

// ListObjects lists objects in a directory (prefix)
func (c *Client) ListObjects(prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(prefix),
	}

	result, err := c.s3Client.ListObjectsV2(input)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(result.Contents))
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}

	return keys, nil
}

// DeleteObject deletes an object from S3
func (c *Client) DeleteObject(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}

	_, err := c.s3Client.DeleteObject(input)
	return err
}

// DeleteUserObjects deletes all objects belonging to a user
func (c *Client) DeleteUserObjects(userID string) error {
	prefix := fmt.Sprintf("users/%s/", userID)

	// List all objects with the prefix
	objects, err := c.ListObjects(prefix)
	if err != nil {
		return err
	}

	// If no objects were found, nothing to delete
	if len(objects) == 0 {
		return nil
	}

	// Delete each object
	for _, key := range objects {
		if err := c.DeleteObject(key); err != nil {
			return err
		}
	}

	return nil
}
