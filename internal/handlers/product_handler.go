package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"glowshop/internal/models"
	"glowshop/internal/repositories"
	"glowshop/internal/services"
	"glowshop/internal/uploads"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// imageField is the form field an uploaded product image arrives under.
const imageField = "productImage"

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.CatalogService
	receiver *uploads.Receiver
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService, receiver *uploads.Receiver) *ProductHandler {
	return &ProductHandler{
		service:  service,
		receiver: receiver,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The
// filter route must be registered before the ":id" route so Fiber does
// not treat "filter" as a product ID. Mutating routes go through the
// auth middleware; reads are public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/filter/:category", h.HandleFilterByCategory)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
}

// HandleListProducts returns every product in insertion order.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleFilterByCategory returns the products in a category. The match is
// case-insensitive; an empty match is a 404.
func (h *ProductHandler) HandleFilterByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	products, err := h.service.ListByCategory(category)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Was not found")
		}
		log.Printf("Error filtering products by category %s: %v", category, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProduct(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Product with given id was not found")
		}
		log.Printf("Error getting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from a multipart form, storing an
// uploaded image when one is present and acceptable.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	form := parseProductForm(c)

	if err := h.validate.Struct(form); err != nil {
		return validationError(c, err)
	}

	imagePath, err := h.acceptUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	created, err := h.service.CreateProduct(&form, imagePath)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.JSON(created)
}

// HandleUpdateProduct overwrites every field of a product except its ID.
// The stored image survives unless the request carries a new upload.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	form := parseProductForm(c)

	if err := h.validate.Struct(form); err != nil {
		return validationError(c, err)
	}

	imagePath, err := h.acceptUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	updated, err := h.service.UpdateProduct(id, form, imagePath)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Product with given id was not found")
		}
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// HandleDeleteProduct removes a product and returns the remaining list.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	remaining, err := h.service.RemoveProduct(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Product with given id was not found")
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(remaining)
}

// acceptUpload passes the request's image file, if any, through the
// upload receiver. A missing file or a silently rejected media type both
// yield an empty path.
func (h *ProductHandler) acceptUpload(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile(imageField)
	if err != nil || file == nil {
		return "", nil
	}
	return h.receiver.Accept(file)
}

// parseProductForm builds a product from the multipart form fields,
// coercing values the way the storefront expects: an unparsable price
// becomes 0, an unparsable stock defaults to 1, and a negative stock is
// clamped to 0.
func parseProductForm(c *fiber.Ctx) models.Product {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		price = 0
	}

	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil {
		stock = 1
	}
	if stock < 0 {
		stock = 0
	}

	bestSeller, _ := strconv.ParseBool(c.FormValue("bestSeller"))

	var mlOptions []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		mlOptions = form.Value["mlOptions"]
	}

	return models.Product{
		Name:       c.FormValue("name"),
		Details:    c.FormValue("details"),
		Brand:      c.FormValue("brand"),
		BrandImage: c.FormValue("brandImage"),
		Price:      price,
		Currency:   c.FormValue("currency"),
		Image:      c.FormValue("image"),
		HoverImage: c.FormValue("hoverImage"),
		Category:   c.FormValue("category"),
		MlOptions:  mlOptions,
		BestSeller: bestSeller,
		CreatedAt:  c.FormValue("created_at"),
		Stock:      stock,
	}
}

// validationError renders a validator failure as a 400 with a field
// error map.
func validationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// validate.Struct can also return *validator.InvalidValidationError.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
