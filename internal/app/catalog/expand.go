package catalog

import "time"

// RequiredType is one concrete expected document type, tagged with the
// category it came from.
type RequiredType struct {
	Category string `json:"category"`
	Type     string `json:"type"`
}

// Years returns the expansion window as of now: StartYear through the
// current year plus FutureYears, ascending.
func (c *Catalog) Years(now time.Time) []int {
	last := now.Year() + c.FutureYears
	if last < c.StartYear {
		return nil
	}
	years := make([]int, 0, last-c.StartYear+1)
	for y := c.StartYear; y <= last; y++ {
		years = append(years, y)
	}
	return years
}

// ExpandPeriodized lists every concrete expected document type as of now,
// grouped by category in catalog order. Non-periodized items contribute
// themselves; periodized templates expand per their kind across the year
// window, years ascending (months January..December, quarters Q1..Q4
// within each year). Excluded categories are skipped entirely.
func (c *Catalog) ExpandPeriodized(now time.Time) []RequiredType {
	years := c.Years(now)
	var out []RequiredType
	for _, cat := range c.Categories {
		if c.excluded(cat.Name) {
			continue
		}
		for _, it := range cat.Items {
			for _, name := range it.Kind.Expand(it.Name, years) {
				out = append(out, RequiredType{Category: cat.Name, Type: name})
			}
		}
	}
	return out
}
