package catalog

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// quoteVariants are the typographic apostrophes that show up in pasted
// French document names. They all collapse to the straight apostrophe so
// that "chiffre d’affaires" and "chiffre d'affaires" name the same type.
var quoteVariants = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"`", "'",
	"´", "'",
	"_", " ",
	"-", " ",
)

// Normalize folds a document-type or category name into its canonical
// comparison form: quote variants unified, underscores/hyphens treated as
// spaces, Unicode-folded (diacritics stripped, lowercased), and whitespace
// collapsed. It is idempotent, and both the catalog side and the
// user-supplied side of every comparison go through it.
func Normalize(s string) string {
	s = quoteVariants.Replace(s)
	s = text.Fold(s)
	return strings.Join(strings.Fields(s), " ")
}
