package jsonbody

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/gofiber/fiber/v2"
)

// LocalsKey is the fiber.Ctx locals key the decoded body is stored under.
const LocalsKey = "json_body"

var (
	// ErrMalformed is returned to the error handler when a JSON body cannot be decoded.
	ErrMalformed = fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
	// ErrMissing is returned by Bind when the request carried no JSON body.
	ErrMissing = fiber.NewError(fiber.StatusBadRequest, "JSON body required")
)

// New returns a middleware that decodes JSON request bodies.
//
// Requests declaring a JSON content type with a non-empty body are decoded with the
// application's JSON decoder and the result is stored in the request locals. Decoding
// failures stop the chain with a 400 before any route handler runs. Other content types
// pass through untouched.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !c.Is("json") {
			return c.Next()
		}

		body := c.Body()
		if len(body) == 0 {
			return c.Next()
		}

		var decoded any
		if err := c.App().Config().JSONDecoder(body, &decoded); err != nil {
			return ErrMalformed
		}

		c.Locals(LocalsKey, decoded)
		return c.Next()
	}
}

// Body returns the decoded JSON body of the request, or nil when the request carried none.
func Body(c *fiber.Ctx) any {
	return c.Locals(LocalsKey)
}

// Bind copies the decoded body into out, matching fields by their json tags. Without
// New in the chain the body is decoded here instead.
func Bind(c *fiber.Ctx, out any) error {
	body := Body(c)
	if body == nil {
		if !c.Is("json") || len(c.Body()) == 0 {
			return ErrMissing
		}
		if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
			return ErrMalformed
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(body)
}
