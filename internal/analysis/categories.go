package analysis

import (
	"fmt"
	"strings"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// Category is a named group of lowercase keywords matched as substrings of
// review text.
type Category struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// Matches reports whether lowered text contains any keyword.
func (c Category) Matches(lowered string) bool {
	for _, k := range c.Keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// Categories is an ordered keyword table.
type Categories []Category

// DefaultCategories returns the built-in keyword table.
func DefaultCategories() Categories {
	return Categories{
		{Name: "Quality", Keywords: []string{"professional", "excellent", "quality", "great", "thorough"}},
		{Name: "Service", Keywords: []string{"helpful", "courteous", "responsive", "service", "friendly"}},
		{Name: "Technical", Keywords: []string{"insulation", "attic", "foam", "efficient", "installation"}},
		{Name: "Performance", Keywords: []string{"temperature", "comfort", "energy", "cooling", "heating"}},
	}
}

// Lookup finds a category by name, case-insensitively.
func (cs Categories) Lookup(name string) (Category, bool) {
	for _, c := range cs {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Names lists category names in table order.
func (cs Categories) Names() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

// Resolve validates a category name, returning its canonical spelling.
// Empty and "All" resolve to CategoryAll.
func (cs Categories) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, CategoryAll) {
		return CategoryAll, nil
	}
	c, ok := cs.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown category %q (use %s or %s)", name, CategoryAll, strings.Join(cs.Names(), ", "))
	}
	return c.Name, nil
}

// Normalized lowercases and trims every keyword and drops empty entries.
// Categories without a name are dropped.
func (cs Categories) Normalized() Categories {
	out := make(Categories, 0, len(cs))
	for _, c := range cs {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		kws := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				kws = append(kws, k)
			}
		}
		out = append(out, Category{Name: name, Keywords: kws})
	}
	return out
}
