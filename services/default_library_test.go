package services_test

import (
	"testing"

	"backend/models"
	"backend/services"
	"backend/utils"
)

func TestDefaultTemplatesAggregatesMatchItems(t *testing.T) {
	t.Parallel()
	for _, tmpl := range services.DefaultTemplates() {
		profiles := make([]models.NutrientProfile, 0, len(tmpl.Items))
		for _, item := range tmpl.Items {
			derived, err := utils.ScaleProfile(item.Reference, item.ReferenceGrams, item.ServedGrams)
			if err != nil {
				t.Fatalf("%s/%s: %v", tmpl.Name, item.Name, err)
			}
			if derived != item.Profile {
				t.Fatalf("%s/%s: stored profile %+v, engine says %+v", tmpl.Name, item.Name, item.Profile, derived)
			}
			profiles = append(profiles, derived)
		}
		if got := utils.AggregateProfiles(profiles); got != tmpl.Profile {
			t.Fatalf("%s: stored aggregate %+v, engine says %+v", tmpl.Name, tmpl.Profile, got)
		}
	}
}

func TestDefaultLibraryHandsOutCopies(t *testing.T) {
	t.Parallel()
	first := services.DefaultIngredients()
	first[0].Name = "mutated"
	first[0].Profile.Calories = -1

	second := services.DefaultIngredients()
	if second[0].Name == "mutated" || second[0].Profile.Calories == -1 {
		t.Fatalf("mutating a returned copy must not touch the shared library")
	}

	tmpls := services.DefaultTemplates()
	tmpls[0].Items[0].ServedGrams = 9999
	if services.DefaultTemplates()[0].Items[0].ServedGrams == 9999 {
		t.Fatalf("template item mutation leaked into the shared library")
	}
}

func TestDefaultLibraryEntriesAreValidReferences(t *testing.T) {
	t.Parallel()
	for _, ing := range services.DefaultIngredients() {
		if ing.ReferenceGrams <= 0 {
			t.Fatalf("%s: reference grams must be positive", ing.Name)
		}
		if !ing.IsLibrary() {
			t.Fatalf("%s: seed entries must have no owner", ing.Name)
		}
		if _, err := utils.ScaleProfile(ing.Profile, ing.ReferenceGrams, 50); err != nil {
			t.Fatalf("%s: %v", ing.Name, err)
		}
	}
}
