package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// NameFinder consultas de nombre que necesita el resolutor.
type NameFinder interface {
	FindByExactName(ctx context.Context, ref string) (*entity.Item, error)
	FindByNameFragment(ctx context.Context, ref string) (*entity.Item, error)
}

// Resolve traduce una referencia libre a lo sumo a un registro.
// Primero coincidencia exacta (tolerando plural con "s"), luego subcadena.
// Con referencia vacía devuelve (nil, nil) sin consultar el almacén.
func Resolve(ctx context.Context, finder NameFinder, ref string) (*entity.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	item, err := finder.FindByExactName(ctx, ref)
	if err != nil || item != nil {
		return item, err
	}
	return finder.FindByNameFragment(ctx, ref)
}

// MatchesExactly compara nombre almacenado y referencia sin distinguir mayúsculas,
// aceptando que uno de los dos lleve una "s" final adicional.
func MatchesExactly(stored, ref string) bool {
	s := strings.ToLower(strings.TrimSpace(stored))
	r := strings.ToLower(strings.TrimSpace(ref))
	if r == "" {
		return false
	}
	return s == r || s == r+"s" || s+"s" == r
}

// ContainsFragment indica si ref aparece dentro del nombre almacenado (sin distinguir mayúsculas).
func ContainsFragment(stored, ref string) bool {
	r := strings.ToLower(strings.TrimSpace(ref))
	if r == "" {
		return false
	}
	return strings.Contains(strings.ToLower(stored), r)
}

// CategoryMatches filtro de show_category: subcadena sin distinguir mayúsculas; fragmento vacío coincide con todo.
func CategoryMatches(category, fragment string) bool {
	f := strings.ToLower(strings.TrimSpace(fragment))
	return strings.Contains(strings.ToLower(category), f)
}
