package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

// GCS stores the checkpoint as a single text object in a Cloud Storage bucket.
type GCS struct {
	service *storage.Service
	bucket  string
	object  string
}

func NewGCS(ctx context.Context, bucket, object string, opts ...option.ClientOption) (*GCS, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("checkpoint bucket is required")
	}

	if strings.TrimSpace(object) == "" {
		return nil, fmt.Errorf("checkpoint object name is required")
	}

	service, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Cloud Storage client (%w)", err)
	}

	return &GCS{
		service: service,
		bucket:  bucket,
		object:  object,
	}, nil
}

func (g *GCS) Load(ctx context.Context) (time.Time, error) {
	response, err := g.service.Objects.Get(g.bucket, g.object).Context(ctx).Download()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return Epoch, ErrNotFound
		}

		return Epoch, fmt.Errorf("error reading gs://%s/%s (%w)", g.bucket, g.object, err)
	}

	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return Epoch, fmt.Errorf("error reading gs://%s/%s (%w)", g.bucket, g.object, err)
	}

	return Parse(string(b))
}

func (g *GCS) Save(ctx context.Context, checkpoint time.Time) error {
	object := storage.Object{
		Name:        g.object,
		ContentType: "text/plain",
	}

	content := strings.NewReader(Format(checkpoint))

	if _, err := g.service.Objects.Insert(g.bucket, &object).
		Media(content, googleapi.ContentType("text/plain")).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error writing gs://%s/%s (%w)", g.bucket, g.object, err)
	}

	return nil
}

func (g *GCS) String() string {
	return fmt.Sprintf("gs://%s/%s", g.bucket, g.object)
}
