package entity

// WorkItem is one recommended infrastructure intervention produced by an
// analysis run (or by the simulated fallback). Immutable once created; the
// whole list is replaced wholesale on the next run.
type WorkItem struct {
	Id                     string
	CategoryCode           string
	MasterWorkCategory     string
	MajorScheduledCategory string
	BeneficiaryType        string
	ActivityType           string
	WorkType               string
	PermissibleWork        string
	GAWStatus              string
	SubCategoryId          int
	Latitude               float64
	Longitude              float64
	FeasibilityScore       float64
	AiReasoning            string

	// Repaired marks items whose sub-category id did not resolve against the
	// catalog and inherited the first entry's classification instead.
	Repaired bool
}
