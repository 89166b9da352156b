// internal/models/food.go
package models

import "encoding/json"

// Section is one nested block of a food document (macronutrients, vitamins,
// ...). Values are kept as decoded; numbers may arrive as strings.
type Section map[string]any

// UnmarshalJSON decodes anything that is not an object as a missing section.
func (s *Section) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		*s = nil
		return nil
	}
	*s = m
	return nil
}

// Value returns the raw value stored under key. A nil section yields nil.
func (s Section) Value(key string) any {
	if s == nil {
		return nil
	}
	return s[key]
}

// Food section names as they appear in the backend documents.
const (
	SectionQuantity       = "cantidadAlimento"
	SectionMacronutrients = "caloriasMacronutrientes"
	SectionVitamins       = "vitaminas"
	SectionMinerals       = "minerales"
	SectionGlycemic       = "aspectoGlucemico"
	SectionEnvironmental  = "aspectoMedioambiental"
	SectionEconomic       = "aspectoEconomico"
	SectionBioactive      = "componentesBioactivos"
	SectionAdditives      = "aditivosAlimentarios"
)

type Food struct {
	ID                       string `json:"_id"`
	Name                     string `json:"nombreAlimento"`
	SKU                      string `json:"sku"`
	GroupExportable          string `json:"grupoExportable"`
	SubgroupExportable       string `json:"subGrupoExportable"`
	ClassificationExportable string `json:"clasificacionExportable"`
	AdequacySubgroup         string `json:"subGrupoAdecuada"`
	SMAEGroup                string `json:"grupoAlimento"`

	Quantity       Section `json:"cantidadAlimento"`
	Macronutrients Section `json:"caloriasMacronutrientes"`
	Vitamins       Section `json:"vitaminas"`
	Minerals       Section `json:"minerales"`
	Glycemic       Section `json:"aspectoGlucemico"`
	Environmental  Section `json:"aspectoMedioambiental"`
	Economic       Section `json:"aspectoEconomico"`
	Bioactive      Section `json:"componentesBioactivos"`
	Additives      Section `json:"aditivosAlimentarios"`
}

// Section looks a nested block up by its document name.
func (f *Food) Section(name string) Section {
	switch name {
	case SectionQuantity:
		return f.Quantity
	case SectionMacronutrients:
		return f.Macronutrients
	case SectionVitamins:
		return f.Vitamins
	case SectionMinerals:
		return f.Minerals
	case SectionGlycemic:
		return f.Glycemic
	case SectionEnvironmental:
		return f.Environmental
	case SectionEconomic:
		return f.Economic
	case SectionBioactive:
		return f.Bioactive
	case SectionAdditives:
		return f.Additives
	}
	return nil
}

// Classification returns the value of the classification field named by
// dimension, e.g. "grupoExportable".
func (f *Food) Classification(dimension string) string {
	switch dimension {
	case "grupoExportable":
		return f.GroupExportable
	case "subGrupoExportable":
		return f.SubgroupExportable
	case "clasificacionExportable":
		return f.ClassificationExportable
	case "subGrupoAdecuada":
		return f.AdequacySubgroup
	case "grupoAlimento":
		return f.SMAEGroup
	}
	return ""
}
