package usecase

import (
	"strings"

	"github.com/ecomart/backend/internal/domain"
)

// useCase is a usage tag inferred from keyword co-occurrence
type useCase struct {
	name     string
	keywords []string
}

// useCaseTable is evaluated in order so detected tags are deterministic
var useCaseTable = []useCase{
	{"phone protection", []string{"phone", "case", "protection", "shock", "cover"}},
	{"lighting", []string{"lamp", "light", "solar", "led", "desk", "garden"}},
	{"personal care", []string{"shampoo", "toothbrush", "soap", "beauty", "hygiene", "care"}},
	{"food storage", []string{"food", "storage", "container", "bottle", "lunchbox", "wrap"}},
	{"clothing", []string{"shirt", "t-shirt", "backpack", "jeans", "socks", "onesie", "fleece"}},
	{"yoga fitness", []string{"yoga", "mat", "strap", "block", "fitness", "exercise"}},
	{"cleaning", []string{"detergent", "sponge", "cleaning", "laundry", "trash"}},
	{"drinking", []string{"water", "bottle", "straw", "drinking", "hydration"}},
	{"cooking", []string{"cutlery", "kitchen", "cooking", "utensil", "straw"}},
	{"home decor", []string{"vase", "sheet", "bedding", "home", "decor"}},
}

// DetectUseCases tags a product with every use case for which at least
// minMatches keywords appear in its lowercased name and description.
// Keywords match as plain substrings, so "led" also hits "recycled".
func DetectUseCases(p domain.Product, minMatches int) []string {
	text := strings.ToLower(p.Name + " " + p.Description)

	var detected []string
	for _, uc := range useCaseTable {
		count := 0
		for _, kw := range uc.keywords {
			if strings.Contains(text, kw) {
				count++
			}
		}
		if count >= minMatches {
			detected = append(detected, uc.name)
		}
	}
	return detected
}

// sharedUseCases counts the tags of a that also appear in b
func sharedUseCases(a, b []string) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				n++
				break
			}
		}
	}
	return n
}
