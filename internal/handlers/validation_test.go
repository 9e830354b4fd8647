package handlers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestValidationErrorWithNonValidatorError(t *testing.T) {
	app := fiber.New()
	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(ctx)

	// Errors that are not validator.ValidationErrors (such as
	// *validator.InvalidValidationError) must render a 400, not panic.
	err := validationError(ctx, errors.New("bad input"))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
}
