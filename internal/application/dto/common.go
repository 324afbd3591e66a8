package dto

// ListParams parámetros de los listados remotos.
type ListParams struct {
	Limit  int
	Offset int
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *ListParams) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error que devuelve el API remoto. Cuando Message
// viene poblado se muestra al usuario tal cual.
type ErrorResponse struct {
	Message string `json:"message"`
}
