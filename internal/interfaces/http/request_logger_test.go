package http_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanb12/Projeto-Integrador/internal/domain"
	apphttp "github.com/renanb12/Projeto-Integrador/internal/interfaces/http"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadGateway, "upstream") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"path":"/ok"`)

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode, "el estado lo fija el ErrorHandler")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"status":502`)

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestRequestLogger_CausaDel5xxSoloEnElLog(t *testing.T) {
	var buf bytes.Buffer
	importer := &importerStub{err: fmt.Errorf("%w: insert history: %w: %w", domain.ErrImportFailed, domain.ErrPersistence,
		errors.New("relation history does not exist"))}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
	apphttp.Router(app, apphttp.RouterDeps{
		Importer:  importer,
		Entries:   entriesStub{},
		Products:  &productsStub{},
		Exits:     exitsStub{},
		History:   &historyStub{},
		Dashboard: dashboardStub{},
		UploadDir: t.TempDir(),
	})

	resp, err := app.Test(multipartRequest(t, "xml", "nota.xml", "<NFe/>"), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "relation history")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "relation history does not exist")
}
