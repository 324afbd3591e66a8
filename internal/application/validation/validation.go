package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/inventario-movil/internal/domain/draft"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

// FieldErrors agrupa los mensajes de validación por campo, tal como se
// despliegan junto a cada input. Un mapa vacío o nil significa válido.
// Nunca viaja como error de Go: la validación bloquea el envío, no lanza.
type FieldErrors map[string][]string

// Empty indica que no hubo violaciones.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Merge incorpora los errores de otro mapa bajo un prefijo de campo
// (p. ej. "units[2].factor").
func (fe FieldErrors) Merge(prefix string, other FieldErrors) {
	for field, msgs := range other {
		fe[prefix+field] = append(fe[prefix+field], msgs...)
	}
}

// Validator aplica el conjunto declarativo de reglas por unidad y por
// transacción completa. Los tags viven junto a los structs; las reglas
// cruzadas (factor/múltiplo y serial) se registran a nivel de struct.
type Validator struct {
	v *validator.Validate
}

// New construye el validador con las reglas cruzadas registradas.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Los errores se reportan con el nombre json del campo, que es el que
	// el formulario conoce.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	v.RegisterStructValidation(unitCrossRules, draft.Unit{})

	return &Validator{v: v}
}

// Unit valida una línea del borrador. Devuelve los errores por campo; vacío
// significa que la unidad puede entrar al borrador.
func (x *Validator) Unit(u draft.Unit) FieldErrors {
	return x.collect(x.v.Struct(u))
}

// header reglas de la cabecera de la transacción.
type header struct {
	Type    string `json:"type" validate:"required,oneof=ENTRY EXIT"`
	Emitter string `json:"emitter" validate:"required,max=255"`
	Folio   string `json:"folio" validate:"required,max=255"`
}

// Draft valida la transacción completa antes del envío: cabecera, al menos
// una unidad, y cada unidad de nuevo (por si alguna regla cruzada quedó
// violada tras un merge). Los errores de unidades se anteponen con
// "units[i].".
func (x *Validator) Draft(d *draft.Draft) FieldErrors {
	fe := x.collect(x.v.Struct(header{
		Type:    d.Type,
		Emitter: d.Emitter,
		Folio:   d.Folio,
	}))
	if fe == nil {
		fe = FieldErrors{}
	}

	units := d.Units()
	if len(units) == 0 {
		fe.add("units", "Transaction must contain at least one unit")
	}
	for i, u := range units {
		if ue := x.Unit(u); !ue.Empty() {
			fe.Merge(fmt.Sprintf("units[%d].", i), ue)
		}
	}

	if fe.Empty() {
		return nil
	}
	return fe
}

// unitCrossRules aplica las reglas entre campos de una unidad:
//
//   - multiple UNIDAD ⟺ factor 1; la violación en cualquiera de las dos
//     direcciones se reporta contra factor.
//   - serial no vacío exige quantity 1, factor 1 y multiple UNIDAD; la
//     violación de cualquier subcondición marca los cuatro campos a la vez
//     para que el formulario resalte la regla completa.
func unitCrossRules(sl validator.StructLevel) {
	u := sl.Current().Interface().(draft.Unit)

	if u.Multiple == entity.MultipleUnidad && u.Factor != 1 {
		sl.ReportError(u.Factor, "factor", "Factor", "factor_unidad", "")
	}
	if u.Multiple != "" && u.Multiple != entity.MultipleUnidad && u.Factor == 1 {
		sl.ReportError(u.Factor, "factor", "Factor", "factor_multiplo", "")
	}

	// Esta regla compara el múltiplo sin distinguir mayúsculas; la
	// anterior compara exacto. El servidor normaliza a mayúsculas, así
	// que la asimetría solo se nota con entradas manuales.
	if u.Serial != "" &&
		(u.Quantity != 1 || u.Factor != 1 || !strings.EqualFold(u.Multiple, entity.MultipleUnidad)) {
		sl.ReportError(u.Serial, "serial", "Serial", "serial_unidad", "")
		sl.ReportError(u.Quantity, "quantity", "Quantity", "serial_unidad", "")
		sl.ReportError(u.Factor, "factor", "Factor", "serial_unidad", "")
		sl.ReportError(u.Multiple, "multiple", "Multiple", "serial_unidad", "")
	}
}

// collect traduce los errores del validador a FieldErrors.
func (x *Validator) collect(err error) FieldErrors {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator.InvalidValidationError solo ocurre con tipos no
		// validables; aquí sería un bug de programación.
		return FieldErrors{"_": {err.Error()}}
	}
	fe := FieldErrors{}
	for _, fi := range verrs {
		fe.add(fi.Field(), message(fi))
	}
	return fe
}

func message(fi validator.FieldError) string {
	switch fi.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", title(fi.Field()))
	case "max":
		return fmt.Sprintf("%s must be at most %s", title(fi.Field()), fi.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", title(fi.Field()), fi.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", title(fi.Field()), fi.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", title(fi.Field()), fi.Param())
	case "factor_unidad":
		return "Factor must be 1 for UNIDAD"
	case "factor_multiplo":
		return "Factor must be different than 1 for PAQUETE, CAJA, OTRO"
	case "serial_unidad":
		return "Serial implies a single unit: quantity must be 1, factor must be 1 and multiple must be UNIDAD"
	default:
		return fmt.Sprintf("%s is invalid", title(fi.Field()))
	}
}

func title(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
