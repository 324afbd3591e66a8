package draft

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-movil/internal/domain"
)

// Draft es el borrador de transacción en construcción: cabecera más una
// lista ordenada de unidades (el orden de inserción es el orden de
// despliegue). Es estado efímero de una sola sesión; no se comparte entre
// goroutines ni se persiste.
//
// Invariante tras cada mutación: no hay dos unidades con el mismo serial no
// vacío, y dos unidades con el mismo barcode sin serial nunca se observan
// como entradas separadas (siempre se fusionan).
type Draft struct {
	Type    string // ENTRY o EXIT
	Emitter string // emisor en ENTRY, receptor en EXIT
	Folio   string // referencia externa
	Date    time.Time

	units []Unit
}

// New crea un borrador vacío con la fecha de hoy.
func New() *Draft {
	return &Draft{Date: time.Now()}
}

// AddUnit incorpora una unidad ya normalizada. Si existe una línea con el
// mismo (barcode, serial): serial no vacío → domain.ErrDuplicateSerial sin
// tocar el borrador; serial vacío → se suma la cantidad sobre la línea
// existente. Sin coincidencia, la unidad se agrega al final con un ID de
// sesión nuevo.
//
// Devuelve merged=true cuando la unidad se fusionó con una existente.
func (d *Draft) AddUnit(u Unit) (merged bool, err error) {
	if i := matchIndex(d.units, u); i != -1 {
		if u.Serial != "" {
			return false, domain.ErrDuplicateSerial
		}
		mergeInto(&d.units[i], u)
		return true, nil
	}
	u.ID = uuid.New()
	d.units = append(d.units, u)
	return false, nil
}

// UpdateUnit reemplaza la unidad identificada por id con la candidata,
// excluyéndola primero del conjunto de comparación para que una edición
// sin cambios no colisione consigo misma. Contra el resto de unidades la
// política es idéntica a AddUnit: serial duplicado → error sin mutar;
// coincidencia sin serial → merge (la línea editada desaparece); sin
// coincidencia → la unidad editada pasa al final conservando su ID.
func (d *Draft) UpdateUnit(id uuid.UUID, u Unit) (merged bool, err error) {
	at := d.indexOf(id)
	if at == -1 {
		return false, domain.ErrUnitNotFound
	}

	rest := make([]Unit, 0, len(d.units)-1)
	rest = append(rest, d.units[:at]...)
	rest = append(rest, d.units[at+1:]...)

	if i := matchIndex(rest, u); i != -1 {
		if u.Serial != "" {
			return false, domain.ErrDuplicateSerial
		}
		mergeInto(&rest[i], u)
		d.units = rest
		return true, nil
	}
	u.ID = id
	d.units = append(rest, u)
	return false, nil
}

// RemoveUnit elimina la línea con el ID de sesión dado. Devuelve false si
// no existe.
func (d *Draft) RemoveUnit(id uuid.UUID) bool {
	at := d.indexOf(id)
	if at == -1 {
		return false
	}
	d.units = append(d.units[:at], d.units[at+1:]...)
	return true
}

// RemoveByValue elimina la primera línea con los mismos valores visibles
// que u (el ID de sesión se ignora). Si hay dos líneas estructuralmente
// idénticas solo cae una; la otra queda intacta.
func (d *Draft) RemoveByValue(u Unit) bool {
	for i := range d.units {
		if d.units[i].EqualValues(u) {
			d.units = append(d.units[:i], d.units[i+1:]...)
			return true
		}
	}
	return false
}

// Filter devuelve una vista de solo lectura con las unidades cuyo nombre,
// barcode, serial, descripción, múltiplo, factor o cantidad contienen el
// texto buscado (sin distinguir mayúsculas). Texto vacío devuelve todo.
func (d *Draft) Filter(query string) []Unit {
	if query == "" {
		return d.Units()
	}
	q := strings.ToLower(query)
	out := make([]Unit, 0, len(d.units))
	for _, u := range d.units {
		if unitMatches(u, q) {
			out = append(out, u)
		}
	}
	return out
}

func unitMatches(u Unit, q string) bool {
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Barcode), q) ||
		(u.Serial != "" && strings.Contains(strings.ToLower(u.Serial), q)) ||
		strings.Contains(strings.ToLower(u.Description), q) ||
		strings.Contains(strings.ToLower(u.Multiple), q) ||
		strings.Contains(strconv.Itoa(u.Factor), q) ||
		strings.Contains(strconv.Itoa(u.Quantity), q)
}

// Units devuelve una copia de las líneas en orden de inserción.
func (d *Draft) Units() []Unit {
	out := make([]Unit, len(d.units))
	copy(out, d.units)
	return out
}

// Unit devuelve la línea con el ID dado.
func (d *Draft) Unit(id uuid.UUID) (Unit, bool) {
	if at := d.indexOf(id); at != -1 {
		return d.units[at], true
	}
	return Unit{}, false
}

// Len es la cantidad de líneas del borrador.
func (d *Draft) Len() int { return len(d.units) }

// Reset vacía las líneas y regresa la cabecera a sus valores por defecto.
// Se invoca tras un envío exitoso o una cancelación explícita.
func (d *Draft) Reset() {
	d.Type = ""
	d.Emitter = ""
	d.Folio = ""
	d.Date = time.Now()
	d.units = nil
}

func (d *Draft) indexOf(id uuid.UUID) int {
	for i := range d.units {
		if d.units[i].ID == id {
			return i
		}
	}
	return -1
}
