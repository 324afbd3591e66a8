package draft

// matchIndex busca en units una línea con el mismo (barcode, serial) que la
// candidata y devuelve su posición, o -1 si no hay coincidencia.
//
// La identidad es estrictamente de dos claves: factor, multiple, almacén y
// cantidad no participan. Dos escaneos del mismo barcode hacia almacenes
// distintos se funden en una sola línea que conserva el almacén de la
// primera captura.
func matchIndex(units []Unit, candidate Unit) int {
	for i, u := range units {
		if u.SameLine(candidate) {
			return i
		}
	}
	return -1
}

// mergeInto aplica la política de merge sobre la unidad existente: suma la
// cantidad de la candidata y conserva todos los demás campos del existente.
// Los campos no-cantidad de la candidata se descartan.
//
// El caso de serial duplicado se rechaza antes de llegar aquí; una unidad
// con serial es un activo único y un repetido indica doble escaneo.
func mergeInto(existing *Unit, candidate Unit) {
	existing.Quantity += candidate.Quantity
}
