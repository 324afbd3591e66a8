package draft

import "strconv"

// Normalize convierte el contenido crudo del formulario en una unidad con
// tipos definidos, descartando los campos opcionales que quedaron en blanco.
// Así las unidades almacenadas nunca arrastran placeholders vacíos del
// formulario, y la comparación de identidad (barcode+serial) no distingue
// entre "vacío" y "sin capturar".
//
// Función pura; no asigna ID de sesión (eso ocurre al insertar en el Draft).
func Normalize(raw RawUnit) Unit {
	return Unit{
		ProductID:   optionalID(raw.ProductID),
		Name:        raw.Name,
		Description: raw.Description,
		ArticleID:   optionalID(raw.ArticleID),
		Barcode:     raw.Barcode,
		Multiple:    raw.Multiple,
		Factor:      coerceInt(raw.Factor),
		Warehouse:   coerceInt(raw.Warehouse),
		Serial:      raw.Serial,
		Quantity:    coerceInt(raw.Quantity),
		Afectation:  raw.Afectation,
	}
}

// optionalID interpreta un ID de referencia: vacío, no numérico o <= 0
// significa "no seleccionado" (el servidor creará el recurso).
func optionalID(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// coerceInt aplica la coerción numérica del formulario: texto vacío o no
// numérico queda en cero y lo rechaza después la capa de validación.
func coerceInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
