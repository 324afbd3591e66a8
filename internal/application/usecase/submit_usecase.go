package usecase

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// msgSubmitFailed fallback cuando el servidor no manda mensaje legible.
const msgSubmitFailed = "An error occurred while creating the transaction"

// SubmitUseCase coordina el envío del borrador: valida la transacción
// completa, la manda al endpoint de creación y reacciona al resultado.
// Éxito: borrador en blanco e índices de stock invalidados. Fracaso: el
// borrador queda intacto para reintentar sin recapturar.
//
// No garantiza idempotencia: reintentar un envío fallido reenvía el
// borrador completo; la deduplicación necesitaría una clave de
// idempotencia del lado del API.
type SubmitUseCase struct {
	api    ports.TransactionsAPI
	search *SearchUseCase
	val    *validation.Validator
	bus    *events.Bus
	log    *logger.Logger
}

// NewSubmitUseCase construye el coordinador.
func NewSubmitUseCase(api ports.TransactionsAPI, search *SearchUseCase, val *validation.Validator, bus *events.Bus, log *logger.Logger) *SubmitUseCase {
	return &SubmitUseCase{api: api, search: search, val: val, bus: bus, log: log}
}

// Submit valida y envía el borrador de la sesión. Con errores de
// validación el envío se bloquea y se devuelven por campo, sin tocar la
// red. Devuelve la transacción creada para ofrecer el acuse.
func (uc *SubmitUseCase) Submit(ctx context.Context, session *DraftUseCase) (*entity.Transaction, validation.FieldErrors, error) {
	if fe := uc.val.Draft(session.draft); !fe.Empty() {
		return nil, fe, nil
	}

	uc.bus.StartProgress("createTransaction")
	defer uc.bus.EndProgress("createTransaction")

	req := dto.FromDraft(session.draft)
	tx, err := uc.api.CreateTransaction(ctx, req)
	if err != nil {
		uc.notifyFailure(err)
		return nil, nil, err
	}

	uc.log.Info().
		Int("id", tx.ID).
		Str("folio", tx.FolioNumber).
		Int("units", len(req.Units)).
		Msg("transacción creada")

	session.draft.Reset()
	uc.search.InvalidateStock()
	return tx, nil, nil
}

// notifyFailure muestra el mensaje del servidor tal cual si existe; si no,
// el fallback genérico. Un 401 además dispara la invalidación global de
// sesión.
func (uc *SubmitUseCase) notifyFailure(err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		uc.bus.Session("", false)
	}
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		uc.bus.Notify(apiErr.Message)
		return
	}
	uc.bus.Notify(msgSubmitFailed)
}

// SaveAcknowledgment descarga el acuse PDF de la transacción creada y lo
// guarda en path; el flujo posterior (imprimir, compartir) queda fuera del
// cliente.
func (uc *SubmitUseCase) SaveAcknowledgment(ctx context.Context, id int, path string) error {
	uc.bus.StartProgress("transactionReport")
	defer uc.bus.EndProgress("transactionReport")

	raw, err := uc.api.TransactionReport(ctx, id)
	if err != nil {
		uc.bus.Notify("Error al obtener el acuse de la transacción")
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		uc.bus.Notify("Error al guardar el acuse de la transacción")
		return err
	}
	uc.log.Info().Int("id", id).Str("path", path).Msg("acuse guardado")
	return nil
}

// Transaction consulta una transacción ya registrada (la vista de detalle
// posterior al envío).
func (uc *SubmitUseCase) Transaction(ctx context.Context, id int) (*entity.Transaction, error) {
	uc.bus.StartProgress("getTransaction")
	defer uc.bus.EndProgress("getTransaction")
	return uc.api.GetTransaction(ctx, id)
}
