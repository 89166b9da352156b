package export

import (
	"time"

	"mcp-diet-registry/internal/models"
)

func testFood(group string, energy any) models.Food {
	return models.Food{
		Name:            "alimento " + group,
		GroupExportable: group,
		Quantity:        models.Section{"pesoNeto": 100.0},
		Macronutrients:  models.Section{"energia": energy},
	}
}

func entry(id, participant string, ts time.Time, foods ...models.FoodEntry) models.RegistryEntry {
	return models.RegistryEntry{
		ID:          id,
		Participant: models.ParticipantRef(participant),
		Timestamp:   models.Timestamp{Time: ts},
		Foods:       foods,
	}
}

func item(food models.Food, quantity any) models.FoodEntry {
	return models.FoodEntry{Food: food, Quantity: quantity}
}

func sumKeys() []string {
	var keys []string
	for _, f := range Fields {
		if f.Reduce() == ReduceSum {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
