package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/promptframe/promptframe-api/pkg/gallery_api/models"
	"github.com/promptframe/promptframe-api/pkg/gallery_api/services"
)

// ImagesAPIController binds HTTP requests to the ImagesAPIService
type ImagesAPIController struct {
	Service *services.ImagesAPIService
}

// NewImagesAPIController creates a new controller
func NewImagesAPIController(s *services.ImagesAPIService) *ImagesAPIController {
	return &ImagesAPIController{Service: s}
}

// ListImages handles GET /images
func (c *ImagesAPIController) ListImages(ctx *gin.Context) ([]models.ImageGeneration, error) {
	return c.Service.ListImages(ctx.Request.Context())
}

// GenerateImage handles POST /images
func (c *ImagesAPIController) GenerateImage(ctx *gin.Context, body *models.GenerateImageInput) (*models.ImageGeneration, error) {
	return c.Service.GenerateImage(ctx.Request.Context(), body.Prompt)
}
