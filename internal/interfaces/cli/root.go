package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/usecase"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/pkg/config"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// Deps agrupa las dependencias que los comandos reciben del arranque.
type Deps struct {
	Config  *config.Config
	Log     *logger.Logger
	Bus     *events.Bus
	Tracker *events.Tracker
	Val     *validation.Validator
	Auth    *usecase.AuthUseCase
	Catalog *usecase.CatalogUseCase
	Search  *usecase.SearchUseCase
	Submit  *usecase.SubmitUseCase
}

// New arma el árbol de comandos. Las notificaciones del bus se imprimen en
// stderr para no ensuciar la salida tabulada de los listados.
func New(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "movil",
		Short:         "Cliente de inventario: transacciones, catálogo y búsqueda",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	deps.Bus.Subscribe(func(e events.Event) {
		switch e.Kind {
		case events.NotificationEnqueued:
			fmt.Fprintln(os.Stderr, "» "+e.Message)
		case events.SessionChanged:
			if !e.Active {
				fmt.Fprintln(os.Stderr, "» Sesión finalizada")
			}
		case events.ProgressStarted, events.ProgressEnded:
			// El tracker ya procesó el evento (se suscribe primero).
			deps.Log.Debug().
				Str("op", e.Key).
				Bool("busy", deps.Tracker.Busy()).
				Msg("progreso")
		}
	})

	root.AddCommand(
		newLoginCmd(deps),
		newLogoutCmd(deps),
		newSessionCmd(deps),
		newWarehousesCmd(deps),
		newArticlesCmd(deps),
		newProductsCmd(deps),
		newInventoryCmd(deps),
		newTransactionsCmd(deps),
		newReportCmd(deps),
		newDraftCmd(deps),
	)
	return root
}

// Execute corre el comando raíz y traduce los errores conocidos a mensajes
// breves con código de salida 1.
func Execute(deps *Deps) {
	if err := New(deps).Execute(); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSession):
			fmt.Fprintln(os.Stderr, "Error: no hay sesión activa, use 'movil login'")
		case errors.Is(err, domain.ErrUnauthorized):
			fmt.Fprintln(os.Stderr, "Error: sesión rechazada por el servidor, vuelva a iniciar sesión")
		default:
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		}
		os.Exit(1)
	}
}
