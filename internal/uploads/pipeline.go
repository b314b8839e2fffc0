// Package uploads moves files into the storage bucket and waits for the
// out-of-band thumbnail resizer to produce the matching thumb. A failed
// pipeline never reports partial success: the original blob is removed
// before the error surfaces.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// imageResizes are the thumbnail variants the resize trigger produces.
var imageResizes = []string{"423x304", "313x370"}

const defaultResize = "1480x2508"

// ErrThumbUnavailable is returned when the thumbnail never appeared
// within the polling budget.
var ErrThumbUnavailable = errors.New("upload/thumb_unavailable")

// Params describes one upload request.
type Params struct {
	FilePath       string // destination folder inside the bucket
	FileName       string // optional name override, without extension
	IsImage        bool
	WithThumbImage bool
	Resize         string // thumbnail variant, e.g. "1480x2508"
}

type Pipeline struct {
	store  BlobStore
	policy BackoffPolicy
	logger *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

func NewPipeline(store BlobStore, policy BackoffPolicy, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:  store,
		policy: policy,
		logger: logger.Named("uploads"),
		sleep:  sleepContext,
	}
}

// Upload runs the full pipeline: store the original, then poll for the
// thumbnail when one is expected. On any failure after the original is
// stored, the original and every thumb variant are deleted before the
// error is returned.
func (p *Pipeline) Upload(ctx context.Context, params Params, originalName, contentType string, r io.Reader) (*File, error) {
	ext := path.Ext(originalName) // keeps the dot, empty when absent
	base := strings.TrimSuffix(originalName, ext)
	if params.FileName != "" {
		base = params.FileName
	}
	if params.Resize == "" {
		params.Resize = defaultResize
	}

	fileName := base + ext
	objectPath := params.FilePath + "/" + fileName
	thumbPath := params.FilePath + "/thumbs/" + base + "_" + params.Resize + ".webp"

	if err := p.store.Upload(ctx, objectPath, contentType, r); err != nil {
		return nil, fmt.Errorf("upload original: %w", err)
	}

	file := &File{
		UID:  uuid.NewString(),
		Name: fileName,
	}

	url, err := p.store.DownloadURL(ctx, objectPath)
	if err != nil {
		p.cleanup(ctx, params, fileName, base)
		return nil, fmt.Errorf("resolve download url: %w", err)
	}
	file.URL = url

	if params.IsImage && params.WithThumbImage {
		thumbURL, err := p.waitForThumb(ctx, thumbPath)
		if err != nil {
			p.cleanup(ctx, params, fileName, base)
			return nil, err
		}
		file.ThumbURL = thumbURL
	}

	p.logger.Info("upload completed",
		zap.String("path", objectPath),
		zap.Bool("withThumb", file.ThumbURL != ""))

	return file, nil
}

// waitForThumb polls until the resizer has produced the thumbnail or the
// policy runs out of attempts.
func (p *Pipeline) waitForThumb(ctx context.Context, thumbPath string) (string, error) {
	for attempt := 1; attempt <= p.policy.Attempts; attempt++ {
		url, err := p.store.DownloadURL(ctx, thumbPath)
		if err == nil {
			return url, nil
		}
		if !errors.Is(err, ErrObjectNotFound) {
			return "", fmt.Errorf("poll thumb: %w", err)
		}

		if attempt == p.policy.Attempts {
			break
		}
		if err := p.sleep(ctx, p.policy.Delay(attempt)); err != nil {
			return "", err
		}
	}

	return "", ErrThumbUnavailable
}

// cleanup deletes the original blob and every thumb variant. Errors are
// logged, not returned: cleanup runs on an already-failing path.
func (p *Pipeline) cleanup(ctx context.Context, params Params, fileName, base string) {
	paths := []string{params.FilePath + "/" + fileName}

	resizes := append([]string{params.Resize}, imageResizes...)
	for _, resize := range resizes {
		paths = append(paths, params.FilePath+"/thumbs/"+base+"_"+resize+".webp")
	}

	for _, objectPath := range paths {
		if err := p.store.Delete(ctx, objectPath); err != nil {
			p.logger.Error("cleanup delete failed", zap.String("path", objectPath), zap.Error(err))
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
