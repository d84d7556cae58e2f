package handlers

import (
	"errors"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"catalogstore/internal/assets"
	"catalogstore/internal/common"
	"catalogstore/internal/models"
	"catalogstore/internal/serviceerrors"
	"catalogstore/internal/services"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
	assetStore     assets.Store
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService, assetStore assets.Store) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		assetStore:     assetStore,
	}
}

// bindInput builds a ProductInput from the multipart form. The image part is
// optional here; the service decides whether it is required.
func (h *ProductHandlers) bindInput(c echo.Context) (*models.ProductInput, func(), error) {
	input := &models.ProductInput{
		Name:     c.FormValue("name"),
		Brand:    c.FormValue("brand"),
		Category: c.FormValue("category"),
	}

	if priceStr := strings.TrimSpace(c.FormValue("price")); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, nil, serviceerrors.NewValidationError("price", "price must be a number")
		}
		input.Price = &price
	}

	if desc := c.FormValue("description"); desc != "" {
		input.Description = &desc
	}

	cleanup := func() {}
	fileHeader, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		// An absent image part is fine; a body we cannot parse is not.
		return nil, nil, serviceerrors.NewValidationError("image", "invalid image upload")
	}
	if err == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return nil, nil, serviceerrors.NewValidationError("image", "failed to read uploaded image")
		}
		cleanup = func() { file.Close() }
		input.Image = &models.ImageUpload{
			OriginalName: fileHeader.Filename,
			Reader:       file,
			Size:         fileHeader.Size,
		}
	}

	return input, cleanup, nil
}

// handleServiceError maps service errors onto the response envelope.
func (h *ProductHandlers) handleServiceError(c echo.Context, err error) error {
	var validationErr *serviceerrors.ValidationError
	if errors.As(err, &validationErr) {
		return common.SendValidationError(c, validationErr.Field, validationErr.Message)
	}

	var notFoundErr *serviceerrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return common.SendNotFoundError(c, "Product")
	}

	var storageErr *serviceerrors.StorageError
	if errors.As(err, &storageErr) {
		log.Printf("Storage error: %v", storageErr)
		return common.SendServerError(c, "Failed to store product image")
	}

	log.Printf("Unexpected error: %v", err)
	return common.SendServerError(c, "Internal server error")
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.List(ctx)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	if products == nil {
		products = []*models.Product{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	input, cleanup, err := h.bindInput(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	defer cleanup()

	product, err := h.productService.Create(ctx, input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ParseID(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ParseID(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	input, cleanup, err := h.bindInput(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	defer cleanup()

	product, err := h.productService.Update(ctx, id, input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ParseID(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.productService.Delete(ctx, id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProductImage handles GET /products/:id/image and streams the stored
// asset for the product.
func (h *ProductHandlers) GetProductImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ParseID(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	exists, err := h.assetStore.Exists(ctx, product.ImageFileName)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	if !exists {
		return common.SendNotFoundError(c, "Product image")
	}

	reader, err := h.assetStore.Open(ctx, product.ImageFileName)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(product.ImageFileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, reader)
}
