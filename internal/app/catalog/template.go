package catalog

import "fmt"

// Kind tags a catalog item as a periodized template (or not). Each kind
// carries its own expansion rule, so callers never branch on normalized
// string constants.
type Kind int

const (
	KindNone Kind = iota
	KindAnnual
	KindMonthly
	KindQuarterly
)

// monthNames are the French month labels used in monthly type names,
// calendar order.
var monthNames = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// quarterLabels are the French quarter labels used in quarterly type names.
var quarterLabels = [4]string{
	"1er trimestre", "2ème trimestre", "3ème trimestre", "4ème trimestre",
}

func (k Kind) String() string {
	switch k {
	case KindAnnual:
		return "annual"
	case KindMonthly:
		return "monthly"
	case KindQuarterly:
		return "quarterly"
	default:
		return "none"
	}
}

// Expand produces the concrete type names for item over the given years
// (ascending). KindNone yields the item itself unchanged.
//
// Annual:    "<item> <year>"
// Monthly:   "<item> <MonthName> <year>"  (Janvier..Décembre per year)
// Quarterly: "<item> <QuarterLabel> <year>" (1er..4ème trimestre per year)
func (k Kind) Expand(item string, years []int) []string {
	switch k {
	case KindAnnual:
		out := make([]string, 0, len(years))
		for _, y := range years {
			out = append(out, fmt.Sprintf("%s %d", item, y))
		}
		return out
	case KindMonthly:
		out := make([]string, 0, len(years)*len(monthNames))
		for _, y := range years {
			for _, m := range monthNames {
				out = append(out, fmt.Sprintf("%s %s %d", item, m, y))
			}
		}
		return out
	case KindQuarterly:
		out := make([]string, 0, len(years)*len(quarterLabels))
		for _, y := range years {
			for _, q := range quarterLabels {
				out = append(out, fmt.Sprintf("%s %s %d", item, q, y))
			}
		}
		return out
	default:
		return []string{item}
	}
}
