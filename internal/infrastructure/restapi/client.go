package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/pkg/config"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// TokenSource entrega el access token vigente. Cadena vacía sin error
// significa "sin sesión": la petición sale sin Authorization y el servidor
// responde 401.
type TokenSource interface {
	Token() (string, error)
}

// Client habla con el API remoto de inventario. Usa el cliente HTTP de
// Fiber (Agent) y agrega en cada petición el Bearer token más los headers
// Lang y Time-Zone que el servidor espera.
type Client struct {
	baseURL  string
	timeout  time.Duration
	lang     string
	timeZone string
	tokens   TokenSource
	log      *logger.Logger
}

// NewClient construye el cliente a partir de la configuración.
func NewClient(cfg config.APIConfig, tokens TokenSource, log *logger.Logger) *Client {
	tz := cfg.TimeZone
	if tz == "" {
		tz = time.Local.String()
	}
	return &Client{
		baseURL:  cfg.BaseURL(),
		timeout:  cfg.Timeout,
		lang:     cfg.Lang,
		timeZone: tz,
		tokens:   tokens,
		log:      log,
	}
}

// do ejecuta una petición JSON y decodifica la respuesta en out (si no es
// nil). El deadline del contexto acota el timeout de la petición; la
// cancelación una vez enviada no se soporta (el envío es fire-and-forget
// con callback de resultado).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("restapi: %s %s: respuesta ilegible: %w", method, path, err)
		}
	}
	return nil
}

// doRaw ejecuta la petición y devuelve el cuerpo sin decodificar (para
// descargas binarias como el acuse PDF).
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	uri := c.baseURL + "/" + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	var a *fiber.Agent
	switch method {
	case fiber.MethodGet:
		a = fiber.Get(uri)
	case fiber.MethodPost:
		a = fiber.Post(uri)
	case fiber.MethodPatch:
		a = fiber.Patch(uri)
	case fiber.MethodPut:
		a = fiber.Put(uri)
	case fiber.MethodDelete:
		a = fiber.Delete(uri)
	default:
		return nil, fmt.Errorf("restapi: método no soportado: %s", method)
	}

	if body != nil {
		a.JSON(body)
	}
	tok, err := c.tokens.Token()
	if err == nil && tok != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	a.Set("Lang", c.lang)
	a.Set("Time-Zone", c.timeZone)
	a.Timeout(c.requestTimeout(ctx))

	start := time.Now()
	code, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("restapi: %s %s: %w", method, path, errs[0])
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", code).
		Dur("elapsed", time.Since(start)).
		Msg("petición al API")

	if code >= fiber.StatusBadRequest {
		return nil, c.apiError(method, path, code, raw)
	}
	return raw, nil
}

// requestTimeout acota el timeout configurado con el deadline del contexto.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func (c *Client) apiError(method, path string, code int, raw []byte) error {
	var payload dto.ErrorResponse
	_ = json.Unmarshal(raw, &payload) // cuerpo no-JSON deja Message vacío

	c.log.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", code).
		Str("message", payload.Message).
		Msg("error del API")

	return &ports.APIError{Status: code, Message: payload.Message}
}
