// internal/export/fields.go
package export

import (
	"mcp-diet-registry/internal/models"
)

// Kind says how a field is derived from the food document and the consumed
// quantity.
type Kind int

const (
	// KindScaled is raw * quantity.
	KindScaled Kind = iota
	// KindFootprint is raw * quantity * correction factor.
	KindFootprint
	// KindWater is (consumption * raw) / KG.
	KindWater
	// KindConsumption is net weight * quantity.
	KindConsumption
	// KindPrice is the raw value, unscaled.
	KindPrice
	// KindFactor is the raw correction factor.
	KindFactor
	// KindLabel is a verbatim text value.
	KindLabel
)

// Reduce is the policy used when two records of the same key are folded.
type Reduce int

const (
	ReduceSum Reduce = iota
	ReduceOverwrite
)

// KG converts the food's net weight unit (grams) into the footprint unit.
const KG = 1000

// Field maps one source value of a food document to one export field.
type Field struct {
	Section string
	Source  string
	Key     string
	Title   string
	Kind    Kind
}

func (f Field) Reduce() Reduce {
	switch f.Kind {
	case KindFactor, KindLabel:
		return ReduceOverwrite
	}
	return ReduceSum
}

func (f Field) IsLabel() bool { return f.Kind == KindLabel }

const (
	netWeightKey = "pesoNeto"
	factorKey    = "factorDeCorreccionParaHuellaHidricaYEGEI"
)

// Fields is the export field table, in column order.
var Fields = []Field{
	{models.SectionQuantity, netWeightKey, "consumo", "Consumo (g)", KindConsumption},

	{models.SectionMacronutrients, "energia", "energiaKcal", "Energía (kcal)", KindScaled},
	{models.SectionMacronutrients, "proteina", "proteina", "Proteína (g)", KindScaled},
	{models.SectionMacronutrients, "lipidos", "lipidos", "Lípidos (g)", KindScaled},
	{models.SectionMacronutrients, "agSaturados", "agSaturados", "AG saturados (g)", KindScaled},
	{models.SectionMacronutrients, "agMonoinsaturados", "agMonoinsaturados", "AG monoinsaturados (g)", KindScaled},
	{models.SectionMacronutrients, "adPoliinsaturados", "agPoliinsaturados", "AG poliinsaturados (g)", KindScaled},
	{models.SectionMacronutrients, "colesterol", "colesterol", "Colesterol (mg)", KindScaled},
	{models.SectionMacronutrients, "omega3", "omega3", "Omega 3 (g)", KindScaled},
	{models.SectionMacronutrients, "omega6", "omega6", "Omega 6 (g)", KindScaled},
	{models.SectionMacronutrients, "omega9", "omega9", "Omega 9 (g)", KindScaled},
	{models.SectionMacronutrients, "hidratosDeCarbono", "hidratosDeCarbono", "Hidratos de carbono (g)", KindScaled},
	{models.SectionMacronutrients, "fibra", "fibra", "Fibra (g)", KindScaled},
	{models.SectionMacronutrients, "fibraInsoluble", "fibraInsoluble", "Fibra insoluble (g)", KindScaled},
	{models.SectionMacronutrients, "azucar", "azucar", "Azúcar (g)", KindScaled},
	{models.SectionMacronutrients, "etanol", "etanol", "Etanol (g)", KindScaled},

	{models.SectionVitamins, "tiamina", "tiamina", "Tiamina (mg)", KindScaled},
	{models.SectionVitamins, "riboflavin", "riboflavina", "Riboflavina (mg)", KindScaled},
	{models.SectionVitamins, "niacina", "niacina", "Niacina (mg)", KindScaled},
	{models.SectionVitamins, "acidoPantotenico", "acidoPantotenico", "Ácido pantoténico (mg)", KindScaled},
	{models.SectionVitamins, "piridoxina", "piridoxina", "Piridoxina (mg)", KindScaled},
	{models.SectionVitamins, "biotina", "biotina", "Biotina (µg)", KindScaled},
	{models.SectionVitamins, "cobalmina", "cobalamina", "Cobalamina (µg)", KindScaled},
	{models.SectionVitamins, "acidoAscorbico", "acidoAscorbico", "Ácido ascórbico (mg)", KindScaled},
	{models.SectionVitamins, "acidoFolico", "acidoFolico", "Ácido fólico (µg)", KindScaled},
	{models.SectionVitamins, "vitaminaA", "vitaminaA", "Vitamina A (µg)", KindScaled},
	{models.SectionVitamins, "vitaminaD", "vitaminaD", "Vitamina D (µg)", KindScaled},
	{models.SectionVitamins, "vitaminaK", "vitaminaK", "Vitamina K (µg)", KindScaled},
	{models.SectionVitamins, "vitaminaE", "vitaminaE", "Vitamina E (mg)", KindScaled},

	{models.SectionMinerals, "calcio", "calcio", "Calcio (mg)", KindScaled},
	{models.SectionMinerals, "fosforo", "fosforo", "Fósforo (mg)", KindScaled},
	{models.SectionMinerals, "hierro", "hierro", "Hierro (mg)", KindScaled},
	{models.SectionMinerals, "hierroNoHem", "hierroNoHem", "Hierro no hem (mg)", KindScaled},
	{models.SectionMinerals, "hierroTotal", "hierroTotal", "Hierro total (mg)", KindScaled},
	{models.SectionMinerals, "magnesio", "magnesio", "Magnesio (mg)", KindScaled},
	{models.SectionMinerals, "sodio", "sodio", "Sodio (mg)", KindScaled},
	{models.SectionMinerals, "potasio", "potasio", "Potasio (mg)", KindScaled},
	{models.SectionMinerals, "zinc", "zinc", "Zinc (mg)", KindScaled},
	{models.SectionMinerals, "selenio", "selenio", "Selenio (µg)", KindScaled},

	{models.SectionGlycemic, "indiceGlicemico", "indiceGlicemico", "Índice glicémico", KindScaled},
	{models.SectionGlycemic, "cargaGlicemica", "cargaGlicemica", "Carga glicémica", KindScaled},

	{models.SectionEnvironmental, factorKey, factorKey, "Factor de corrección para huella hídrica y EGEI", KindFactor},
	{models.SectionEnvironmental, "tipo", "tipo", "Tipo", KindLabel},
	{models.SectionEnvironmental, "lugar", "lugar", "Lugar", KindLabel},
	{models.SectionEnvironmental, "huellaHidricaTotal", "huellaHidricaTotal", "Huella hídrica total (L)", KindFootprint},
	{models.SectionEnvironmental, "huellaHidricaVerde", "huellaHidricaVerde", "Huella hídrica verde (L)", KindFootprint},
	{models.SectionEnvironmental, "huellaHidricaAzul", "huellaHidricaAzul", "Huella hídrica azul (L)", KindFootprint},
	{models.SectionEnvironmental, "huellaHidricaGris", "huellaHidricaGris", "Huella hídrica gris (L)", KindFootprint},
	{models.SectionEnvironmental, "aguaParaLavado", "aguaParaLavado", "Agua para lavado (L)", KindWater},
	{models.SectionEnvironmental, "aguaParaCoccion", "aguaParaCoccion", "Agua para cocción (L)", KindWater},
	{models.SectionEnvironmental, "lugarEGEI", "lugarEGEI", "Lugar EGEI", KindLabel},
	{models.SectionEnvironmental, "citaEGEI", "citaEGEI", "Cita EGEI", KindLabel},
	{models.SectionEnvironmental, "huellaCarbono", "huellaDeCarbono", "Huella de carbono (kg CO2eq)", KindScaled},
	{models.SectionEnvironmental, "huellaEcologica", "huellaEcologica", "Huella ecológica (gha)", KindScaled},
	{models.SectionEnvironmental, "usoDeSuelo", "usoDeSuelo", "Uso de suelo (m2)", KindScaled},
	{models.SectionEnvironmental, "energiaFosil", "energiaFosil", "Energía fósil (MJ)", KindScaled},
	{models.SectionEnvironmental, "nitrogeno", "nitrogeno", "Nitrógeno (g)", KindScaled},
	{models.SectionEnvironmental, "fosforo", "fosforoAmbiental", "Fósforo ambiental (g)", KindScaled},
	{models.SectionEnvironmental, "puntajeEcologico", "puntajeEcologico", "Puntaje ecológico", KindScaled},

	{models.SectionEconomic, "precio", "precio", "Precio", KindPrice},
	{models.SectionEconomic, "lugarDeCompra", "lugarDeCompra", "Lugar de compra", KindLabel},
	{models.SectionEconomic, "lugarDeVenta", "lugarDeVenta", "Lugar de venta", KindLabel},

	{models.SectionBioactive, "fitoquimicos", "fitoquimicos", "Fitoquímicos (mg)", KindScaled},
	{models.SectionBioactive, "polifenoles", "polifenoles", "Polifenoles (mg)", KindScaled},
	{models.SectionBioactive, "antocianinas", "antocianinas", "Antocianinas (mg)", KindScaled},
	{models.SectionBioactive, "taninos", "taninos", "Taninos (mg)", KindScaled},
	{models.SectionBioactive, "isoflavonas", "isoflavonas", "Isoflavonas (mg)", KindScaled},
	{models.SectionBioactive, "resveratrol", "resveratrol", "Resveratrol (mg)", KindScaled},
	{models.SectionBioactive, "isotiocinatos", "isotiocianatos", "Isotiocianatos (mg)", KindScaled},
	{models.SectionBioactive, "caretenoides", "carotenoides", "Carotenoides (mg)", KindScaled},
	{models.SectionBioactive, "betacarotenos", "betacarotenos", "Betacarotenos (mg)", KindScaled},
	{models.SectionBioactive, "licopeno", "licopeno", "Licopeno (mg)", KindScaled},
	{models.SectionBioactive, "luteina", "luteina", "Luteína (mg)", KindScaled},
	{models.SectionBioactive, "alicina", "alicina", "Alicina (mg)", KindScaled},
	{models.SectionBioactive, "cafeina", "cafeina", "Cafeína (mg)", KindScaled},
	{models.SectionBioactive, "UFC", "ufc", "UFC", KindScaled},

	{models.SectionAdditives, "benzoatoDeSodio", "benzoatoDeSodio", "Benzoato de sodio (mg)", KindScaled},
	{models.SectionAdditives, "polisorbato", "polisorbato", "Polisorbato (mg)", KindScaled},
	{models.SectionAdditives, "azulBrillanteFCFoE133", "azulBrillanteFCFoE133", "Azul brillante FCF o E133 (mg)", KindScaled},
	{models.SectionAdditives, "azurrubinaOE102", "azurrubinaOE102", "Azurrubina o E102 (mg)", KindScaled},
	{models.SectionAdditives, "amarilloOcasoFDFoE110", "amarilloOcasoFDFoE110", "Amarillo ocaso FDF o E110 (mg)", KindScaled},
	{models.SectionAdditives, "tartrazinaOE102", "tartrazinaOE102", "Tartrazina o E102 (mg)", KindScaled},
	{models.SectionAdditives, "verdeSoE142", "verdeSoE142", "Verde S o E142 (mg)", KindScaled},
	{models.SectionAdditives, "negroBrillanteBNoE151", "negroBrillanteBNoE151", "Negro brillante BN o E151 (mg)", KindScaled},
	{models.SectionAdditives, "sucralosa", "sucralosa", "Sucralosa (mg)", KindScaled},
	{models.SectionAdditives, "estevia", "estevia", "Estevia (mg)", KindScaled},
	{models.SectionAdditives, "sacarina", "sacarina", "Sacarina (mg)", KindScaled},
	{models.SectionAdditives, "aspartame", "aspartame", "Aspartame (mg)", KindScaled},
	{models.SectionAdditives, "acesulfameK", "acesulfameK", "Acesulfame K (mg)", KindScaled},
	{models.SectionAdditives, "carboxymethylcellulose", "carboxymethylcellulose", "Carboximetilcelulosa (mg)", KindScaled},
	{models.SectionAdditives, "dioxidoDeTitanio", "dioxidoDeTitanio", "Dióxido de titanio (mg)", KindScaled},
	{models.SectionAdditives, "monolauratoDeGlicerol", "monolauratoDeGlicerol", "Monolaurato de glicerol (mg)", KindScaled},
}
