package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/pkg/jwt"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// TokenStore persiste el access token entre ejecuciones del cliente.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// AuthUseCase maneja el ciclo de sesión del cliente: login contra el API,
// resguardo del token y cierre (voluntario o por expiración).
type AuthUseCase struct {
	api    ports.AuthAPI
	tokens TokenStore
	bus    *events.Bus
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(api ports.AuthAPI, tokens TokenStore, bus *events.Bus, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{api: api, tokens: tokens, bus: bus, log: log}
}

// Login autentica y guarda el token; publica el cambio de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) error {
	uc.bus.StartProgress("login")
	defer uc.bus.EndProgress("login")

	token, err := uc.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := uc.tokens.Save(token); err != nil {
		return err
	}
	uc.bus.Session(email, true)
	uc.log.Info().Str("email", email).Msg("sesión iniciada")
	return nil
}

// Logout descarta el token local y publica el cierre de sesión.
func (uc *AuthUseCase) Logout() error {
	if err := uc.tokens.Clear(); err != nil {
		return err
	}
	uc.bus.Session("", false)
	return nil
}

// Session devuelve el email de la sesión vigente. Si no hay token o ya
// venció según sus claims, responde domain.ErrNoSession; el veredicto
// final siempre lo da el servidor.
func (uc *AuthUseCase) Session() (string, error) {
	token, err := uc.tokens.Load()
	if err != nil {
		return "", err
	}
	if jwt.Expired(token, time.Now()) {
		return "", domain.ErrNoSession
	}
	claims, err := jwt.Inspect(token)
	if err != nil {
		return "", domain.ErrNoSession
	}
	return claims.Email, nil
}
