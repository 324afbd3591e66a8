package restapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
)

// Login autentica contra POST /api/login y devuelve el access token. Es la
// única petición que sale sin Bearer (el TokenSource aún no tiene nada que
// entregar).
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out dto.LoginResponse
	in := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, fiber.MethodPost, "login", nil, in, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
