package assistant

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/jhoicas/inventario-ai/internal/application/dto"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

var (
	batchPattern = regexp.MustCompile(`(?s)<json>(.*?)</json>`)
	fencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
)

// ErrMalformedBatch el marcador existe pero su contenido no es un arreglo JSON de intenciones.
var ErrMalformedBatch = errors.New("lote de intenciones mal formado")

// ParsedReply respuesta del modelo separada en prosa y lote.
type ParsedReply struct {
	Raw      string          // texto completo devuelto por el modelo
	Prose    string          // texto previo al marcador <json>
	HasBatch bool            // el marcador estaba presente
	Intents  []entity.Intent // vacío si no hay lote o si es inválido
}

// rawIntent forma en que el modelo emite cada operación. Se aceptan "intent" o
// "action" y "item" o "name"; los números llegan como número, cadena o basura.
type rawIntent struct {
	Intent   string         `json:"intent"`
	Action   string         `json:"action"`
	Item     string         `json:"item"`
	Name     string         `json:"name"`
	Quantity dto.FlexNumber `json:"quantity"`
	Price    dto.FlexNumber `json:"price"`
	Category string         `json:"category"`
	MinStock dto.FlexNumber `json:"min_stock"`
}

func (r rawIntent) toEntity() entity.Intent {
	tag := firstNonEmpty(r.Intent, r.Action)
	action, _ := entity.ParseAction(tag)
	return entity.Intent{
		Action:   action,
		Tag:      strings.TrimSpace(tag),
		ItemRef:  strings.TrimSpace(firstNonEmpty(r.Item, r.Name)),
		Quantity: r.Quantity.Int(),
		Price:    r.Price.Decimal(),
		Category: strings.TrimSpace(r.Category),
		MinStock: r.MinStock.Int(),
	}
}

// ParseReply separa la prosa del lote. Sin marcador devuelve el texto como prosa
// y HasBatch=false. Con marcador inválido devuelve la prosa y ErrMalformedBatch.
func ParseReply(text string) (ParsedReply, error) {
	out := ParsedReply{Raw: text, Prose: text}
	m := batchPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return out, nil
	}
	out.HasBatch = true
	out.Prose = strings.TrimSpace(text[:m[0]])

	payload := strings.TrimSpace(text[m[2]:m[3]])
	if f := fencePattern.FindStringSubmatch(payload); f != nil {
		payload = f[1]
	}

	var raws []rawIntent
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		return out, errors.Join(ErrMalformedBatch, err)
	}
	out.Intents = make([]entity.Intent, 0, len(raws))
	for _, r := range raws {
		out.Intents = append(out.Intents, r.toEntity())
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
