package catalog

// WorkDefinition is a single permissible work entry from the NREGA permissible
// works master list. The catalog is loaded once at startup and never mutated.
type WorkDefinition struct {
	Seq             int    `json:"seq"`
	CategoryCode    string `json:"master_category_code"`
	WorkType        string `json:"work_type"`
	PermissibleWork string `json:"permissible_work"`
	GAWStatus       string `json:"gaw_status"`
	SubCategoryID   int    `json:"sub_category_id"`
}

const (
	GAWStatusGAW    = "GAW"
	GAWStatusNonGAW = "Non-GAW"
)

type Catalog struct {
	defs  []WorkDefinition
	index map[int]int // sub_category_id -> position in defs
}

// New builds a catalog over the given definitions, keeping declaration order.
func New(defs []WorkDefinition) *Catalog {
	index := make(map[int]int, len(defs))
	for i, def := range defs {
		index[def.SubCategoryID] = i
	}
	return &Catalog{defs: defs, index: index}
}

// Default returns the catalog backed by the built-in permissible works table.
func Default() *Catalog {
	return New(permissibleWorks)
}

// Lookup resolves a sub-category id to its definition.
func (c *Catalog) Lookup(subCategoryID int) (WorkDefinition, bool) {
	i, ok := c.index[subCategoryID]
	if !ok {
		return WorkDefinition{}, false
	}
	return c.defs[i], true
}

// First returns the first catalog entry. It is the documented repair default
// for candidates whose sub-category id does not resolve.
func (c *Catalog) First() WorkDefinition {
	return c.defs[0]
}

// Excerpt returns up to n definitions in declaration order. Used to bound the
// reference context sent to the model.
func (c *Catalog) Excerpt(n int) []WorkDefinition {
	if n > len(c.defs) {
		n = len(c.defs)
	}
	out := make([]WorkDefinition, n)
	copy(out, c.defs[:n])
	return out
}

// All returns a copy of every definition in declaration order.
func (c *Catalog) All() []WorkDefinition {
	out := make([]WorkDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len reports the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}
