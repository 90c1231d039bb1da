package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// RegistrarSwagger liga a UI de documentação quando o arquivo gerado existe.
// O middleware panica na registração se o arquivo não está no disco, então a
// ausência do artefato não pode derrubar o boot: vira um warn e a API sobe
// sem a UI.
func RegistrarSwagger(app *fiber.App, filePath string, log *logger.Logger) {
	if _, err := os.Stat(filePath); err != nil {
		log.Warn().Str("arquivo", filePath).Msg("swagger.json ausente, UI de documentação desligada")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Baixa Estoque API",
	}))
}
