package geoai

import "yuktadhara-be/internal/entity"

// SimulatedWorks returns the deterministic fallback plan used when the
// external call or its reconciliation fails. Usable with no network access
// and no credential; ids and values are constant across calls.
func SimulatedWorks() []*entity.WorkItem {
	return []*entity.WorkItem{
		{
			Id:                     "sim-1",
			CategoryCode:           "A",
			MasterWorkCategory:     "PUBLIC WORKS RELATING TO NATURAL RESOURCES MANAGEMENT",
			MajorScheduledCategory: "Watershed Management",
			BeneficiaryType:        "Community",
			ActivityType:           "New Work",
			WorkType:               "Check Dams",
			PermissibleWork:        "Construction of Gabion Check Dam for Community",
			GAWStatus:              "GAW",
			SubCategoryId:          2105,
			Latitude:               17.345,
			Longitude:              76.855,
			FeasibilityScore:       92,
			AiReasoning:            "High drainage density detected. 2nd order stream intersection. Valley pinch point suitable for gabion structure to arrest silt.",
		},
		{
			Id:                     "sim-2",
			CategoryCode:           "A",
			MasterWorkCategory:     "PUBLIC WORKS RELATING TO NATURAL RESOURCES MANAGEMENT",
			MajorScheduledCategory: "Water Conservation",
			BeneficiaryType:        "Community",
			ActivityType:           "New Work",
			WorkType:               "Ponds",
			PermissibleWork:        "Construction of Community Water Harvesting Ponds",
			GAWStatus:              "GAW",
			SubCategoryId:          2076,
			Latitude:               17.325,
			Longitude:              76.875,
			FeasibilityScore:       88,
			AiReasoning:            "Natural depression identified in DEM. Low permeability soil indicated. Excellent potential for surface water accumulation.",
		},
		{
			Id:                     "sim-3",
			CategoryCode:           "B",
			MasterWorkCategory:     "INDIVIDUAL ASSETS",
			MajorScheduledCategory: "Land Development",
			BeneficiaryType:        "Individual",
			ActivityType:           "New Work",
			WorkType:               "Plantation",
			PermissibleWork:        "Wastelands Block Plantation of Forestry Trees for Individuals",
			GAWStatus:              "GAW",
			SubCategoryId:          9054,
			Latitude:               17.338,
			Longitude:              76.890,
			FeasibilityScore:       79,
			AiReasoning:            "Slope analysis indicates 5-10% gradient with degraded scrubland signature in LULC. Afforestation recommended to prevent soil erosion.",
		},
		{
			Id:                     "sim-4",
			CategoryCode:           "D",
			MasterWorkCategory:     "RURAL INFRASTRUCTURE",
			MajorScheduledCategory: "Drainage Management",
			BeneficiaryType:        "Community",
			ActivityType:           "Maintenance",
			WorkType:               "Storm water drains",
			PermissibleWork:        "Repair and maintenance of intermediate and Link Storm Water Drain for Community",
			GAWStatus:              "Non-GAW",
			SubCategoryId:          12016,
			Latitude:               17.331,
			Longitude:              76.862,
			FeasibilityScore:       71,
			AiReasoning:            "Existing drain alignment shows siltation signature near habitation cluster. Desilting and section repair advised before monsoon.",
		},
	}
}
