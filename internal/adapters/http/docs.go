package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// specPath is where deployments mount the OpenAPI document.
const specPath = "api/openapi.yaml"

const swaggerShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>RepCheck API Reference</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
  <style>body{margin:0;background:#fafafa}</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/docs/openapi.yaml',
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout',
    });
  </script>
</body>
</html>`

// SetupDocs serves Swagger UI at /docs, reading the spec from disk so doc
// updates need no rebuild. Missing spec file degrades to a 404, not a panic.
func SetupDocs(app *fiber.App) {
	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/html; charset=utf-8")
		return c.SendString(swaggerShell)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		spec, err := os.ReadFile(specPath)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "openapi spec not found"})
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(spec)
	})
}
