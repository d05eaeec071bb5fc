package services_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	problem "github.com/promptframe/promptframe-api/pkg/gallery_api/helpers/problem"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/models"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/services"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/testutil"
	"github.com/promptframe/promptframe-api/pkg/providers"
	"github.com/promptframe/promptframe-api/pkg/storage"
)

// stubRepo mocks ImageRepository for service tests
type stubRepo struct {
	saveFunc func(ctx context.Context, img *models.ImageGeneration) error
	listFunc func(ctx context.Context) ([]models.ImageGeneration, error)
	saves    int
}

func (s *stubRepo) Save(ctx context.Context, img *models.ImageGeneration) error {
	s.saves++
	if s.saveFunc != nil {
		return s.saveFunc(ctx, img)
	}
	img.Id = "generated-id"
	return nil
}

func (s *stubRepo) GetImages(ctx context.Context) ([]models.ImageGeneration, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return nil, nil
}

// stubGenerator mocks the provider
type stubGenerator struct {
	genFunc func(ctx context.Context, prompt string) (*providers.Asset, error)
	calls   int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (*providers.Asset, error) {
	s.calls++
	return s.genFunc(ctx, prompt)
}

// stubStore mocks the object store
type stubStore struct {
	uploadFunc func(ctx context.Context, key string, data []byte, contentType string) error
	listFunc   func(ctx context.Context) ([]storage.ObjectInfo, error)
	uploads    int
	lastKey    string
	lastData   []byte
}

func (s *stubStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.uploads++
	s.lastKey = key
	s.lastData = data
	if s.uploadFunc != nil {
		return s.uploadFunc(ctx, key, data, contentType)
	}
	return nil
}

func (s *stubStore) PublicURL(key string) string {
	return "https://storage.example/bucket/" + key
}

func (s *stubStore) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return nil, nil
}

func TestGenerateImage_EmptyPrompt(t *testing.T) {
	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{URL: "https://provider/x.png"}, nil
	}}
	repo := &stubRepo{}
	store := &stubStore{}
	svc := services.NewImagesAPIService(repo, gen, store)

	for _, prompt := range []string{"", "   "} {
		_, err := svc.GenerateImage(context.Background(), prompt)
		require.Error(t, err)

		var apiErr problem.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Status)
		assert.Equal(t, "Prompt is required", apiErr.Message)
	}

	assert.Zero(t, gen.calls, "provider must not be called for an empty prompt")
	assert.Zero(t, store.uploads)
	assert.Zero(t, repo.saves)
}

func TestGenerateImage_ProviderFailure(t *testing.T) {
	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return nil, errors.New("rate limited")
	}}
	repo := &stubRepo{}
	store := &stubStore{}
	svc := services.NewImagesAPIService(repo, gen, store)

	_, err := svc.GenerateImage(context.Background(), "a red fox")
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "rate limited", apiErr.Message)
	assert.Zero(t, store.uploads, "no upload after provider failure")
	assert.Zero(t, repo.saves, "no insert after provider failure")
}

func TestGenerateImage_NoAssetReturned(t *testing.T) {
	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{}, nil
	}}
	svc := services.NewImagesAPIService(&stubRepo{}, gen, &stubStore{})

	_, err := svc.GenerateImage(context.Background(), "a red fox")
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "No image URL returned from generation", apiErr.Message)
}

func TestGenerateImage_FullPipeline(t *testing.T) {
	imageBytes := []byte("png-bytes")
	srv := testutil.NewTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(imageBytes)
	}))

	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{URL: srv.URL + "/x.png"}, nil
	}}
	repo := &stubRepo{}
	store := &stubStore{}
	svc := services.NewImagesAPIService(repo, gen, store)

	record, err := svc.GenerateImage(context.Background(), "  a red fox  ")
	require.NoError(t, err)

	assert.Equal(t, 1, store.uploads)
	assert.Equal(t, imageBytes, store.lastData)
	assert.Regexp(t, regexp.MustCompile(`^\d+-.+\.png$`), store.lastKey)

	assert.Equal(t, "generated-id", record.Id)
	assert.Equal(t, "a red fox", record.Prompt)
	assert.Equal(t, store.lastKey, record.StoragePath)
	assert.Equal(t, "https://storage.example/bucket/"+store.lastKey, record.ImageUrl,
		"image_url must point at the storage domain, not the provider")
}

func TestGenerateImage_InlineAssetSkipsFetch(t *testing.T) {
	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{Data: []byte("inline"), ContentType: "image/png"}, nil
	}}
	repo := &stubRepo{}
	store := &stubStore{}
	svc := services.NewImagesAPIService(repo, gen, store)

	record, err := svc.GenerateImage(context.Background(), "a red fox")
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), store.lastData)
	assert.NotEmpty(t, record.StoragePath)
}

func TestGenerateImage_FetchFailure(t *testing.T) {
	srv := testutil.NewTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{URL: srv.URL + "/gone.png"}, nil
	}}
	repo := &stubRepo{}
	store := &stubStore{}
	svc := services.NewImagesAPIService(repo, gen, store)

	_, err := svc.GenerateImage(context.Background(), "a red fox")
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Zero(t, store.uploads, "no upload after fetch failure")
	assert.Zero(t, repo.saves)
}

func TestGenerateImage_UploadFailure(t *testing.T) {
	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{Data: []byte("inline")}, nil
	}}
	repo := &stubRepo{}
	store := &stubStore{uploadFunc: func(ctx context.Context, key string, data []byte, contentType string) error {
		return errors.New("bucket unavailable")
	}}
	svc := services.NewImagesAPIService(repo, gen, store)

	_, err := svc.GenerateImage(context.Background(), "a red fox")
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Zero(t, repo.saves, "no database insert after upload failure")
}

func TestGenerateImage_DatabaseFailure(t *testing.T) {
	gen := &stubGenerator{genFunc: func(ctx context.Context, prompt string) (*providers.Asset, error) {
		return &providers.Asset{Data: []byte("inline")}, nil
	}}
	repo := &stubRepo{saveFunc: func(ctx context.Context, img *models.ImageGeneration) error {
		return errors.New("connection reset")
	}}
	store := &stubStore{}
	svc := services.NewImagesAPIService(repo, gen, store)

	_, err := svc.GenerateImage(context.Background(), "a red fox")
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "Failed to save image to database", apiErr.Message)
	cause := errors.Unwrap(apiErr)
	require.NotNil(t, cause, "the wrapped repository failure must stay reachable")
	assert.Contains(t, cause.Error(), "connection reset")
	assert.Equal(t, 1, store.uploads, "blob was already uploaded when the insert failed")
}

func TestListImages(t *testing.T) {
	repo := &stubRepo{listFunc: func(ctx context.Context) ([]models.ImageGeneration, error) {
		return []models.ImageGeneration{{Id: "1"}, {Id: "2"}}, nil
	}}
	svc := services.NewImagesAPIService(repo, &stubGenerator{}, &stubStore{})

	images, err := svc.ListImages(context.Background())
	require.NoError(t, err)
	assert.Len(t, images, 2)
}

func TestListImages_EmptyIsNotNil(t *testing.T) {
	svc := services.NewImagesAPIService(&stubRepo{}, &stubGenerator{}, &stubStore{})

	images, err := svc.ListImages(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestListImages_RepoFailure(t *testing.T) {
	repo := &stubRepo{listFunc: func(ctx context.Context) ([]models.ImageGeneration, error) {
		return nil, errors.New("boom")
	}}
	svc := services.NewImagesAPIService(repo, &stubGenerator{}, &stubStore{})

	_, err := svc.ListImages(context.Background())
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "Failed to fetch images", apiErr.Message)
}

func TestAuditStorage(t *testing.T) {
	srv := testutil.NewTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	repo := &stubRepo{listFunc: func(ctx context.Context) ([]models.ImageGeneration, error) {
		return []models.ImageGeneration{
			{Id: "1", StoragePath: "a.png", ImageUrl: srv.URL + "/a.png"},
			{Id: "2", StoragePath: "dead.png", ImageUrl: srv.URL + "/dead.png"},
		}, nil
	}}
	store := &stubStore{listFunc: func(ctx context.Context) ([]storage.ObjectInfo, error) {
		return []storage.ObjectInfo{
			{Name: "a.png"},
			{Name: "dead.png"},
			{Name: "orphan.png"},
		}, nil
	}}
	svc := services.NewImagesAPIService(repo, &stubGenerator{}, store)

	report, err := svc.AuditStorage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Records)
	assert.Equal(t, 3, report.Objects)
	assert.Equal(t, []string{"orphan.png"}, report.OrphanedBlobs)
	assert.Equal(t, []string{srv.URL + "/dead.png"}, report.UnreachableURL)
}
