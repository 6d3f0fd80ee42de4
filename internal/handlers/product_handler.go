package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/gocarina/gocsv"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	router.Get("/stats", h.HandleGetStats)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/export.csv", h.HandleExportProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists products, newest first, optionally filtered by
// the search and category query parameters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var filter models.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return respondBadQuery(c, err)
	}
	products, err := h.service.SearchProducts(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleExportProducts streams the (optionally filtered) product list as CSV.
func (h *ProductHandler) HandleExportProducts(c *fiber.Ctx) error {
	var filter models.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return respondBadQuery(c, err)
	}
	products, err := h.service.SearchProducts(filter)
	if err != nil {
		return respondError(c, err)
	}
	body, err := gocsv.MarshalBytes(&products)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("products.csv")
	return c.Send(body)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// HandleCreateProduct creates a new product. Omitted description, category
// and image_url take their defaults.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return respondBadBody(c, err)
	}

	id, err := h.service.CreateProduct(payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"message": "Product created successfully",
	})
}

// HandleUpdateProduct replaces every field of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	payload, err := parsePayload(c)
	if err != nil {
		return respondBadBody(c, err)
	}

	if err := h.service.UpdateProduct(id, payload); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated successfully"})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleGetCategories lists the distinct product categories.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleGetStats returns inventory totals.
func (h *ProductHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// parsePayload decodes a product body. Form submissions carry every value as
// text, so they are read field by field and the numbers are left for the
// validator to parse.
func parsePayload(c *fiber.Ctx) (models.ProductPayload, error) {
	var payload models.ProductPayload
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		values := make(map[string]string)
		c.Request().PostArgs().VisitAll(func(key, val []byte) {
			values[string(key)] = string(val)
		})
		return models.PayloadFromForm(values), nil
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return payload, err
		}
		values := make(map[string]string, len(form.Value))
		for key, vals := range form.Value {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		return models.PayloadFromForm(values), nil
	default:
		return payload, c.BodyParser(&payload)
	}
}

// productID reads the :id route parameter. Anything that is not a positive
// integer cannot name a product.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func respondNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
}

func respondBadQuery(c *fiber.Ctx, err error) error {
	zap.L().Debug("error parsing query parameters", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid query parameters",
	})
}

func respondBadBody(c *fiber.Ctx, err error) error {
	// A well-formed body with a value of the wrong JSON type names its field.
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return respondError(c, apperrors.InvalidField(typeErr.Field, "must be a string"))
	}
	zap.L().Debug("error parsing request body", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"field": apperrors.FieldOf(err),
		})
	case apperrors.IsNotFound(err):
		return respondNotFound(c)
	default:
		zap.L().Error("product request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
