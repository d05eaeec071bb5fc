package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/teris-io/shortid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/promptframe/promptframe-api/pkg/gallery_api/helpers/httpclient"
	problem "github.com/promptframe/promptframe-api/pkg/gallery_api/helpers/problem"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/models"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/repositories"
	"github.com/promptframe/promptframe-api/pkg/providers"
	"github.com/promptframe/promptframe-api/pkg/storage"
)

// Stage markers for the generate-and-persist pipeline. The first failing
// stage aborts the pipeline; nothing retries.
var (
	ErrNoImage       = errors.New("No image URL returned from generation")
	ErrFetchFailed   = errors.New("failed to fetch generated image")
	ErrStorageUpload = errors.New("failed to upload image to storage")
	ErrDatabaseSave  = errors.New("Failed to save image to database")
)

// ImagesAPIService orchestrates the generation pipeline and the read path.
type ImagesAPIService struct {
	repo      repositories.ImageRepository
	generator providers.Generator
	store     storage.ObjectStore
}

// NewImagesAPIService Constructor-functie
func NewImagesAPIService(repo repositories.ImageRepository, generator providers.Generator, store storage.ObjectStore) *ImagesAPIService {
	return &ImagesAPIService{repo: repo, generator: generator, store: store}
}

// ListImages returns all stored records, newest first.
func (s *ImagesAPIService) ListImages(ctx context.Context) ([]models.ImageGeneration, error) {
	images, err := s.repo.GetImages(ctx)
	if err != nil {
		log.Printf("Error fetching images: %v", err)
		return nil, problem.NewInternalServerError("Failed to fetch images").WithCause(err)
	}
	if images == nil {
		images = []models.ImageGeneration{}
	}
	return images, nil
}

// GenerateImage runs the full pipeline for one prompt: provider call, blob
// fetch, storage upload, public URL resolution, metadata insert. One request
// is one pass; no state survives between calls.
func (s *ImagesAPIService) GenerateImage(ctx context.Context, prompt string) (*models.ImageGeneration, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, problem.NewBadRequest("Prompt is required")
	}

	log.Printf("Generating image with prompt: %s", prompt)
	asset, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Error generating image: %v", err)
		return nil, problem.NewInternalServerError(err.Error()).WithCause(err)
	}
	if asset.Empty() {
		return nil, problem.NewInternalServerError(ErrNoImage.Error())
	}

	record, err := s.saveImage(ctx, prompt, asset)
	if err != nil {
		log.Printf("Error saving image: %v", err)
		if errors.Is(err, ErrDatabaseSave) {
			return nil, problem.NewInternalServerError(ErrDatabaseSave.Error()).WithCause(err)
		}
		return nil, problem.NewInternalServerError(err.Error()).WithCause(err)
	}

	return record, nil
}

// saveImage is the persistence half of the pipeline. The storage upload and
// the database insert are not atomic: an insert failure leaves an orphaned
// blob behind, which the audit job reports but nothing removes.
func (s *ImagesAPIService) saveImage(ctx context.Context, prompt string, asset *providers.Asset) (*models.ImageGeneration, error) {
	data := asset.Data
	contentType := asset.ContentType
	if len(data) == 0 {
		var err error
		data, contentType, err = httpclient.FetchImage(ctx, asset.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err)
		}
	}

	key := storageKey()
	if err := s.store.Upload(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUpload, err)
	}

	record := &models.ImageGeneration{
		Prompt:      prompt,
		ImageUrl:    s.store.PublicURL(key),
		StoragePath: key,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseSave, err)
	}

	return record, nil
}

// storageKey builds a bucket-unique object key: millisecond timestamp plus a
// short random suffix.
func storageKey() string {
	suffix, err := shortid.Generate()
	if err != nil {
		suffix = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s.png", time.Now().UnixMilli(), suffix)
}

// AuditReport summarizes one storage audit run.
type AuditReport struct {
	Records        int
	Objects        int
	OrphanedBlobs  []string
	UnreachableURL []string
}

// AuditStorage cross-checks the database against the object store: objects
// with no referencing row are counted as orphans, and every record's public
// URL is verified with a bounded number of concurrent HEAD requests. The
// audit only reports; it never deletes.
func (s *ImagesAPIService) AuditStorage(ctx context.Context) (*AuditReport, error) {
	images, err := s.repo.GetImages(ctx)
	if err != nil {
		return nil, err
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]bool, len(images))
	for _, img := range images {
		referenced[img.StoragePath] = true
	}

	report := &AuditReport{Records: len(images), Objects: len(objects)}
	for _, obj := range objects {
		if !referenced[obj.Name] {
			report.OrphanedBlobs = append(report.OrphanedBlobs, obj.Name)
		}
	}

	const maxConcurrent = 4
	sem := semaphore.NewWeighted(int64(maxConcurrent))
	g, ctx := errgroup.WithContext(ctx)

	unreachable := make(chan string, len(images))
	for _, img := range images {
		img := img
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			if err := httpclient.CheckURL(ctx, img.ImageUrl); err != nil {
				log.Printf("audit: image %s unreachable: %v", img.Id, err)
				unreachable <- img.ImageUrl
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(unreachable)
	for u := range unreachable {
		report.UnreachableURL = append(report.UnreachableURL, u)
	}

	log.Printf("storage audit: %d records, %d objects, %d orphaned, %d unreachable",
		report.Records, report.Objects, len(report.OrphanedBlobs), len(report.UnreachableURL))

	return report, nil
}
