// internal/models/admin.go
package models

// EditOptions are the form sections participants may edit.
type EditOptions struct {
	ID                  string `json:"_id,omitempty"`
	InformacionPersonal bool   `json:"informacionPersonal"`
	Circunferencia      bool   `json:"circunferencia"`
	CamposCorporales    bool   `json:"camposCorporales"`
	EstadoGeneral       bool   `json:"estadoGeneral"`
	ExposicionSolar     bool   `json:"exposicionSolar"`
	GastroIntestinal    bool   `json:"gastroIntestinal"`
	Bioquimicos         bool   `json:"bioquimicos"`
	Clinicos            bool   `json:"clinicos"`
	Sueno               bool   `json:"sueno"`
}

// EditOptionFields lists the toggles accepted by PATCH opcionesEdicion.
var EditOptionFields = []string{
	"informacionPersonal",
	"circunferencia",
	"camposCorporales",
	"estadoGeneral",
	"exposicionSolar",
	"gastroIntestinal",
	"bioquimicos",
	"clinicos",
	"sueno",
}

type RegistryOptions struct {
	ID            string `json:"_id,omitempty"`
	RegistroLibre bool   `json:"registroLibre"`
}

// PyramidLevel is one level of the food-pyramid carousel.
type PyramidLevel struct {
	ID    string   `json:"_id,omitempty"`
	Level string   `json:"nivel"`
	URLs  []string `json:"url"`
}

const (
	MinPyramidLevel = 0
	MaxPyramidLevel = 5
)
