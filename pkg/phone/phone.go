// Package phone normaliza teléfonos de clientes y proveedores a E.164.
package phone

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// ErrInvalid el número no es válido para la región indicada.
var ErrInvalid = errors.New("teléfono inválido")

// Normalizer convierte números locales o internacionales a E.164 (+573001234567).
type Normalizer struct {
	region string
}

// NewNormalizer crea un normalizador con la región por defecto (ISO 3166, ej. "CO").
func NewNormalizer(defaultRegion string) *Normalizer {
	return &Normalizer{region: strings.ToUpper(strings.TrimSpace(defaultRegion))}
}

// Normalize devuelve el número en E.164. Un valor vacío se devuelve vacío.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	p, err := libphonenumber.Parse(raw, n.region)
	if err != nil {
		return "", ErrInvalid
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalid
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
