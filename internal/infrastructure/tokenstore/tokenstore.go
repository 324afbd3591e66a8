package tokenstore

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-movil/internal/domain"
)

// Store guarda el access token de la sesión en un archivo con permisos
// restringidos: el equivalente de terminal al almacenamiento seguro del
// dispositivo. Una cadena vacía equivale a "sin sesión".
type Store struct {
	mu   sync.Mutex
	path string
}

// New crea el store sobre la ruta dada.
func New(path string) *Store {
	return &Store{path: path}
}

// Save persiste el token (sobrescribe el anterior).
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Token devuelve el token guardado; cadena vacía si no hay sesión.
// Implementa restapi.TokenSource.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// Load devuelve el token o domain.ErrNoSession si no hay ninguno.
func (s *Store) Load() (string, error) {
	tok, err := s.Token()
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", domain.ErrNoSession
	}
	return tok, nil
}

// Clear elimina el token guardado. No es error que no exista.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
