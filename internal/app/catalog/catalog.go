package catalog

// Item is one document type inside a category. Kind says whether the item
// is a periodized template that expands into per-period concrete types.
type Item struct {
	Name string
	Kind Kind
}

// Category groups catalog items under a display label.
type Category struct {
	Name  string
	Items []Item
}

// Catalog is the document-type catalog: ordered categories of items, plus
// the knobs that drive category resolution and periodized expansion.
type Catalog struct {
	Categories []Category

	// DefaultCategory is returned when a type matches nothing.
	DefaultCategory string

	// ExcludedCategories are left out of the required-document expansion
	// (they still resolve normally).
	ExcludedCategories []string

	// StartYear / FutureYears bound the expansion window: StartYear through
	// currentYear+FutureYears inclusive.
	StartYear   int
	FutureYears int

	// index maps Normalize(item name) to the first category containing it,
	// in catalog order.
	index map[string]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		Categories: []Category{
			{Name: "Livrables", Items: []Item{
				{Name: "Contrat d'engagement"},
				{Name: "Emargement"},
				{Name: "Questionnaire Evaluation Entreprise"},
				{Name: "Bilan Diagnostic"},
				{Name: "Questionnaire de satisfaction"},
			}},
			{Name: "Documents d'identité", Items: []Item{
				{Name: "CNI"},
				{Name: "Passeport"},
			}},
			{Name: "Justificatif RSA", Items: []Item{
				{Name: "Attestation de paiement CAF"},
				{Name: "Copie d'écran CDAP"},
			}},
			{Name: "Justificatif Entreprise", Items: []Item{
				{Name: "Avis Sirene"},
				{Name: "Extrait K ou Kbis"},
			}},
			{Name: "Justificatif d'inéligibilité", Items: []Item{
				{Name: "Attestation de paiement CAF"},
				{Name: "Copie d'écran CDAP d'inéligibilité"},
			}},
			{Name: "Justificatif radiation entreprise", Items: []Item{
				{Name: "Avis Sirene"},
				{Name: "Extrait K ou Kbis"},
			}},
			{Name: "Déclarations / Attestations", Items: []Item{
				{Name: "Attestation fiscale", Kind: KindAnnual},
				{Name: "Attestation de chiffre d'affaires", Kind: KindAnnual},
				{Name: "Attestation de versement CFP", Kind: KindAnnual},
				{Name: "Bilan / Liasse fiscale", Kind: KindAnnual},
				{Name: "Déclaration mensuelle de chiffre d'affaires", Kind: KindMonthly},
				{Name: "Déclaration trimestrielle de chiffre d'affaire", Kind: KindQuarterly},
			}},
			{Name: "Autre", Items: []Item{
				{Name: "Personnalisé"},
			}},
		},
		DefaultCategory:    "Autre",
		ExcludedCategories: []string{"Livrables"},
		StartYear:          2000,
		FutureYears:        25,
	}
	c.buildIndex()
	return c
}

// New builds a catalog from explicit categories with the given resolution
// and expansion settings.
func New(categories []Category, defaultCategory string, excluded []string, startYear, futureYears int) *Catalog {
	c := &Catalog{
		Categories:         categories,
		DefaultCategory:    defaultCategory,
		ExcludedCategories: excluded,
		StartYear:          startYear,
		FutureYears:        futureYears,
	}
	c.buildIndex()
	return c
}

func (c *Catalog) buildIndex() {
	c.index = make(map[string]string)
	for _, cat := range c.Categories {
		for _, it := range cat.Items {
			key := Normalize(it.Name)
			if _, ok := c.index[key]; !ok {
				c.index[key] = cat.Name
			}
		}
	}
}

// ResolveCategory maps a free-text document type to its catalog category.
// Matching is exact on the normalized form; a type that matches no item
// resolves to the default category. Ties (the same item in more than one
// category) go to the earliest category in catalog order.
func (c *Catalog) ResolveCategory(docType string) string {
	if cat, ok := c.index[Normalize(docType)]; ok {
		return cat
	}
	return c.DefaultCategory
}

func (c *Catalog) excluded(category string) bool {
	for _, ex := range c.ExcludedCategories {
		if ex == category {
			return true
		}
	}
	return false
}
