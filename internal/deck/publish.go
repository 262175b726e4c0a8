package deck

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"golang.org/x/sync/errgroup"
)

// Publisher stores an encoded bundle and reports where it went.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, b *Bundle, data []byte) (string, error)
}

// FilePublisher writes bundles to <Dir>/<id>.json.gz.
type FilePublisher struct {
	Dir string
}

// Name implements Publisher.
func (p *FilePublisher) Name() string { return "file" }

// Publish implements Publisher.
func (p *FilePublisher) Publish(ctx context.Context, b *Bundle, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(p.Dir, b.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing bundle: %w", err)
	}
	return path, nil
}

// blobUploader is the part of *azblob.Client the publisher needs.
type blobUploader interface {
	UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
	URL() string
}

// BlobPublisher uploads bundles to an Azure Blob Storage container.
type BlobPublisher struct {
	client    blobUploader
	container string
}

// NewBlobPublisher authenticates with DefaultAzureCredential against the
// account that owns containerURL, e.g.
// https://account.blob.core.windows.net/decks.
func NewBlobPublisher(containerURL string) (*BlobPublisher, error) {
	serviceURL, container, err := splitContainerURL(containerURL)
	if err != nil {
		return nil, err
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("blob client: %w", err)
	}
	return &BlobPublisher{client: client, container: container}, nil
}

// Name implements Publisher.
func (p *BlobPublisher) Name() string { return "blob" }

// Publish implements Publisher.
func (p *BlobPublisher) Publish(ctx context.Context, b *Bundle, data []byte) (string, error) {
	_, err := p.client.UploadBuffer(ctx, p.container, b.FileName(), data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType:     to.Ptr("application/json"),
			BlobContentEncoding: to.Ptr("gzip"),
		},
		Metadata: map[string]*string{
			"title": to.Ptr(b.Title),
			"style": to.Ptr(b.Style),
		},
	})
	if err != nil {
		return "", fmt.Errorf("uploading bundle %s: %w", b.ID, err)
	}
	return strings.TrimSuffix(p.client.URL(), "/") + "/" + p.container + "/" + b.FileName(), nil
}

// splitContainerURL separates the account endpoint from the container name.
func splitContainerURL(raw string) (serviceURL, container string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("invalid blob container URL %q", raw)
	}
	container, _, _ = strings.Cut(strings.Trim(u.Path, "/"), "/")
	if container == "" {
		return "", "", fmt.Errorf("blob container URL %q has no container", raw)
	}
	return u.Scheme + "://" + u.Host + "/", container, nil
}

// PublishAll encodes the bundle once and hands it to every publisher
// concurrently. Locations come back in publisher order. The first failure
// cancels the rest.
func PublishAll(ctx context.Context, b *Bundle, pubs ...Publisher) ([]string, error) {
	var buf bytes.Buffer
	if err := WriteGzip(&buf, b); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	locations := make([]string, len(pubs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range pubs {
		eg.Go(func() error {
			loc, err := p.Publish(egCtx, b, data)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name(), err)
			}
			locations[i] = loc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return locations, nil
}
