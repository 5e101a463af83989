package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

//go:generate go tool mockgen -source=blob.go -destination=blob_mocks_test.go -package=export

// blobClient is just an interface over [*azblob.Client]
type blobClient interface {
	// UploadBuffer maps to [azblob.Client.UploadBuffer]
	UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte) error
}

type azblobClientWrapper struct {
	inner *azblob.Client
}

func (w *azblobClientWrapper) UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte) error {
	_, err := w.inner.UploadBuffer(ctx, containerName, blobName, buffer, nil)
	return err
}

// BlobUploader stores exports in an Azure Blob Storage container.
type BlobUploader struct {
	client     blobClient
	accountURL string
	container  string
}

// NewBlobUploader connects to accountURL with the default Azure credential
// chain (environment, workload identity, managed identity, Azure CLI).
func NewBlobUploader(accountURL, container string) (*BlobUploader, error) {
	if accountURL == "" || container == "" {
		return nil, errors.New("blob upload needs both export.account_url and export.container")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("creating azure credential: %w", err)
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}
	return newBlobUploader(&azblobClientWrapper{inner: client}, accountURL, container), nil
}

func newBlobUploader(client blobClient, accountURL, container string) *BlobUploader {
	return &BlobUploader{client: client, accountURL: strings.TrimRight(accountURL, "/"), container: container}
}

// Upload stores data under name and returns the blob URL.
func (u *BlobUploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if err := u.client.UploadBuffer(ctx, u.container, name, data); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			return "", fmt.Errorf("uploading %s to container %s: %s (HTTP %d)", name, u.container, respErr.ErrorCode, respErr.StatusCode)
		}
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}
	return fmt.Sprintf("%s/%s/%s", u.accountURL, u.container, name), nil
}
