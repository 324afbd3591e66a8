package draft

import "github.com/google/uuid"

// RawUnit es el contenido del formulario de unidad tal como se captura:
// los campos numéricos viajan como texto porque así los deja el input
// (vacío significa "sin definir"). Nunca se almacena directamente; pasa
// primero por Normalize.
type RawUnit struct {
	ProductID   string
	Name        string
	Description string
	ArticleID   string
	Barcode     string
	Multiple    string
	Factor      string
	Warehouse   string
	Serial      string
	Quantity    string
	Afectation  bool
}

// Unit es una línea normalizada del borrador de transacción. El ID es local
// a la sesión: se asigna al insertar en el borrador y permite eliminar una
// línea concreta aunque exista otra estructuralmente idéntica.
//
// ProductID y ArticleID en nil significan "crear producto/artículo nuevo"
// en el servidor.
type Unit struct {
	ID          uuid.UUID `json:"-"`
	ProductID   *int      `json:"productId,omitempty"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description" validate:"required,max=255"`
	ArticleID   *int      `json:"articleId,omitempty"`
	Barcode     string    `json:"barcode" validate:"required,max=255"`
	Multiple    string    `json:"multiple" validate:"required,max=255"`
	Factor      int       `json:"factor" validate:"min=1,max=255"`
	Warehouse   int       `json:"warehouse" validate:"required,gt=0"`
	Serial      string    `json:"serial,omitempty" validate:"omitempty,max=255"`
	Quantity    int       `json:"quantity" validate:"required,min=1"`
	Afectation  bool      `json:"afectation"`
}

// SameLine indica si dos unidades son "la misma línea" del borrador:
// mismo barcode y mismo serial (ambos vacíos también cuenta como igual).
// El resto de campos queda fuera de la identidad a propósito; ver la
// política de merge en Draft.AddUnit.
func (u Unit) SameLine(other Unit) bool {
	return u.Barcode == other.Barcode && u.Serial == other.Serial
}

// EqualValues compara todos los campos visibles de la unidad, ignorando el
// ID de sesión. Dos líneas capturadas por separado pueden ser iguales en
// valores y seguir siendo entradas distintas del borrador.
func (u Unit) EqualValues(other Unit) bool {
	return u.Name == other.Name &&
		u.Description == other.Description &&
		u.Barcode == other.Barcode &&
		u.Multiple == other.Multiple &&
		u.Factor == other.Factor &&
		u.Warehouse == other.Warehouse &&
		u.Serial == other.Serial &&
		u.Quantity == other.Quantity &&
		u.Afectation == other.Afectation &&
		equalIntPtr(u.ProductID, other.ProductID) &&
		equalIntPtr(u.ArticleID, other.ArticleID)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
