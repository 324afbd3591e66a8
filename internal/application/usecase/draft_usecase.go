package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/internal/domain/draft"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// msgDuplicateSerial texto que ve el usuario ante un doble escaneo.
const msgDuplicateSerial = "Serial has been added to the transaction before"

// DraftUseCase es la sesión de captura de una transacción nueva: posee el
// borrador, valida cada unidad antes de dejarla entrar y convierte los
// conflictos de merge en notificaciones en lugar de propagarlos como
// errores. Dueño único del borrador; las mutaciones llegan serializadas
// por el loop de la sesión, así que no necesita candados.
type DraftUseCase struct {
	draft *draft.Draft
	val   *validation.Validator
	bus   *events.Bus
	log   *logger.Logger
}

// NewDraftUseCase abre una sesión con un borrador vacío y fecha de hoy.
func NewDraftUseCase(val *validation.Validator, bus *events.Bus, log *logger.Logger) *DraftUseCase {
	return &DraftUseCase{
		draft: draft.New(),
		val:   val,
		bus:   bus,
		log:   log,
	}
}

// SetHeader fija tipo, emisor/receptor y folio del borrador.
func (uc *DraftUseCase) SetHeader(typ, emitter, folio string) {
	uc.draft.Type = typ
	uc.draft.Emitter = emitter
	uc.draft.Folio = folio
}

// SetDate cambia la fecha de la transacción (por defecto hoy).
func (uc *DraftUseCase) SetDate(t time.Time) {
	uc.draft.Date = t
}

// AddUnit normaliza, valida e incorpora una unidad capturada. Devuelve
// added=true si el borrador cambió; los errores de validación llegan por
// campo y el serial duplicado se notifica sin mutar el borrador (el
// conflicto nunca escapa como error de Go hacia el caller).
func (uc *DraftUseCase) AddUnit(raw draft.RawUnit) (added bool, fe validation.FieldErrors) {
	uc.bus.StartProgress("addUnit")
	defer uc.bus.EndProgress("addUnit")

	u := draft.Normalize(raw)
	if fe := uc.val.Unit(u); !fe.Empty() {
		return false, fe
	}

	merged, err := uc.draft.AddUnit(u)
	if errors.Is(err, domain.ErrDuplicateSerial) {
		uc.bus.Notify(msgDuplicateSerial)
		return false, nil
	}
	uc.log.Debug().
		Str("barcode", u.Barcode).
		Bool("merged", merged).
		Int("units", uc.draft.Len()).
		Msg("unidad agregada al borrador")
	return true, nil
}

// UpdateUnit edita la línea identificada por id con el contenido nuevo del
// formulario. Misma semántica de validación y conflicto que AddUnit.
func (uc *DraftUseCase) UpdateUnit(id uuid.UUID, raw draft.RawUnit) (updated bool, fe validation.FieldErrors) {
	uc.bus.StartProgress("updateUnit")
	defer uc.bus.EndProgress("updateUnit")

	u := draft.Normalize(raw)
	if fe := uc.val.Unit(u); !fe.Empty() {
		return false, fe
	}

	_, err := uc.draft.UpdateUnit(id, u)
	switch {
	case errors.Is(err, domain.ErrDuplicateSerial):
		uc.bus.Notify(msgDuplicateSerial)
		return false, nil
	case errors.Is(err, domain.ErrUnitNotFound):
		uc.bus.Notify("La unidad ya no existe en el borrador")
		return false, nil
	}
	return true, nil
}

// RemoveUnit elimina una línea por su ID de sesión.
func (uc *DraftUseCase) RemoveUnit(id uuid.UUID) bool {
	uc.bus.StartProgress("removeUnit")
	defer uc.bus.EndProgress("removeUnit")
	return uc.draft.RemoveUnit(id)
}

// Units devuelve las líneas en orden de captura.
func (uc *DraftUseCase) Units() []draft.Unit {
	return uc.draft.Units()
}

// Unit devuelve una línea por ID, para precargar el formulario de edición.
func (uc *DraftUseCase) Unit(id uuid.UUID) (draft.Unit, bool) {
	return uc.draft.Unit(id)
}

// Filter aplica la búsqueda libre dentro del borrador.
func (uc *DraftUseCase) Filter(query string) []draft.Unit {
	return uc.draft.Filter(query)
}

// Header expone la cabecera actual.
func (uc *DraftUseCase) Header() (typ, emitter, folio string, date time.Time) {
	return uc.draft.Type, uc.draft.Emitter, uc.draft.Folio, uc.draft.Date
}

// Len es la cantidad de líneas capturadas.
func (uc *DraftUseCase) Len() int { return uc.draft.Len() }

// Cancel descarta el borrador completo (navegación fuera de la pantalla).
func (uc *DraftUseCase) Cancel() {
	uc.draft.Reset()
}
