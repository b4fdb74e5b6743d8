package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Presigning happens entirely client-side, so it can be checked
// without a running object store.
func TestS3Client_GenerateDownloadURL(t *testing.T) {
	ctx := context.Background()

	client, err := NewS3Client(ctx, S3ClientConfig{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
		Bucket:          "helpbeacon-exports",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	url, err := client.GenerateDownloadURL(ctx, "search-logs/20260801-120000.csv")
	require.NoError(t, err)

	assert.Contains(t, url, "helpbeacon-exports")
	assert.Contains(t, url, "search-logs/20260801-120000.csv")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}
