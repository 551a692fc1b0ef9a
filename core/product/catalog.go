package product

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

// Catalog is a read-only, in-memory product list. Listing order is
// insertion order.
type Catalog struct {
	products []Product
	byID     map[string]int
}

func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

func (c *Catalog) Fetch(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

type Filter struct {
	Category string
	Type     Type
	Query    string
}

func (c *Catalog) List(f Filter) []Product {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// Seed is the shop's demo catalog.
func Seed() []Product {
	return []Product{
		{
			ID:          "1",
			Title:       "Guide complet de la recherche d'emploi",
			Description: "Un guide détaillé pour optimiser votre recherche d'emploi et décrocher le poste de vos rêves.",
			Price:       price("19.99"),
			Image:       "/placeholder.svg?height=400&width=300&text=Guide+Emploi",
			Category:    "ebooks",
			Type:        Ebook,
			Rating:      4.8,
			Reviews:     124,
			Bestseller:  true,
			Author:      "Marie Dupont",
		},
		{
			ID:            "2",
			Title:         "Template CV Premium - Design Moderne",
			Description:   "Un modèle de CV professionnel au design moderne qui attirera l'attention des recruteurs.",
			Price:         price("12.99"),
			OriginalPrice: pricePtr("17.99"),
			Image:         "/placeholder.svg?height=400&width=300&text=CV+Premium",
			Category:      "templates",
			Type:          Template,
			Rating:        4.9,
			Reviews:       87,
			Sale:          true,
		},
		{
			ID:          "3",
			Title:       "Masterclass : Réussir son entretien d'embauche",
			Description: "Une formation vidéo complète pour maîtriser l'art de l'entretien d'embauche.",
			Price:       price("29.99"),
			Image:       "/placeholder.svg?height=400&width=300&text=Masterclass+Entretien",
			Category:    "videos",
			Type:        Video,
			Rating:      4.7,
			Reviews:     56,
			Author:      "Thomas Martin",
		},
		{
			ID:          "4",
			Title:       "Pack de 50 modèles de lettres de motivation",
			Description: "Une collection de modèles de lettres de motivation adaptés à différents secteurs et postes.",
			Price:       price("15.99"),
			Image:       "/placeholder.svg?height=400&width=300&text=Lettres+Motivation",
			Category:    "templates",
			Type:        Template,
			Rating:      4.5,
			Reviews:     42,
		},
		{
			ID:          "5",
			Title:       "Outil d'analyse de CV - Optimisez votre candidature",
			Description: "Un outil intelligent qui analyse votre CV et vous propose des améliorations ciblées.",
			Price:       price("24.99"),
			Image:       "/placeholder.svg?height=400&width=300&text=Analyse+CV",
			Category:    "outils",
			Type:        Tool,
			Rating:      4.6,
			Reviews:     38,
			New:         true,
		},
		{
			ID:          "6",
			Title:       "LinkedIn : Stratégies avancées pour votre profil",
			Description: "Apprenez à optimiser votre profil LinkedIn pour attirer les recruteurs et développer votre réseau.",
			Price:       price("22.99"),
			Image:       "/placeholder.svg?height=400&width=300&text=LinkedIn+Pro",
			Category:    "ebooks",
			Type:        Ebook,
			Rating:      4.7,
			Reviews:     65,
			Author:      "Sophie Leroux",
		},
		{
			ID:            "7",
			Title:         "Template CV Créatif - Secteurs artistiques",
			Description:   "Un modèle de CV créatif idéal pour les professionnels des secteurs artistiques et créatifs.",
			Price:         price("14.99"),
			OriginalPrice: pricePtr("19.99"),
			Image:         "/placeholder.svg?height=400&width=300&text=CV+Créatif",
			Category:      "templates",
			Type:          Template,
			Rating:        4.8,
			Reviews:       29,
			Sale:          true,
		},
		{
			ID:          "8",
			Title:       "Guide de reconversion professionnelle",
			Description: "Un guide complet pour réussir votre reconversion professionnelle et changer de carrière.",
			Price:       price("18.99"),
			Image:       "/placeholder.svg?height=400&width=300&text=Reconversion",
			Category:    "ebooks",
			Type:        Ebook,
			Rating:      4.9,
			Reviews:     47,
			Bestseller:  true,
			Author:      "Jean Dubois",
		},
	}
}
