package catalog

// permissibleWorks is the subset of the permissible works master list used by
// the planner demo. Ported from the NREGA permissible works PDF extract.
var permissibleWorks = []WorkDefinition{
	{Seq: 34, CategoryCode: "A", WorkType: "Check Dams", PermissibleWork: "Construction of Earthen Gully Plugs for Individuals", GAWStatus: "GAW", SubCategoryID: 9096},
	{Seq: 21, CategoryCode: "A", WorkType: "Bunds", PermissibleWork: "Construction of Pebble graded Bund for Community", GAWStatus: "GAW", SubCategoryID: 2069},
	{Seq: 76, CategoryCode: "A", WorkType: "Recharge structure", PermissibleWork: "Construction of Sand filter for openwell recharge for Groups", GAWStatus: "Non-GAW", SubCategoryID: 2095},
	{Seq: 112, CategoryCode: "B", WorkType: "Plantation", PermissibleWork: "Wastelands Block Plantation of Forestry Trees for Individuals", GAWStatus: "GAW", SubCategoryID: 9054},
	{Seq: 7, CategoryCode: "B", WorkType: "Ponds", PermissibleWork: "Construction of Fisheries Ponds for Community", GAWStatus: "GAW", SubCategoryID: 11006},
	{Seq: 183, CategoryCode: "A", WorkType: "Ponds", PermissibleWork: "Construction of Community Water Harvesting Ponds", GAWStatus: "GAW", SubCategoryID: 2076},
	{Seq: 95, CategoryCode: "A", WorkType: "Check Dams", PermissibleWork: "Construction of Gabion Check Dam for Community", GAWStatus: "GAW", SubCategoryID: 2105},
	{Seq: 4, CategoryCode: "A", WorkType: "Plantation", PermissibleWork: "Block Plantation of Sericulture Trees in Fields for Community", GAWStatus: "GAW", SubCategoryID: 15134},
	{Seq: 19, CategoryCode: "A", WorkType: "Plantation", PermissibleWork: "Road side line plantation of Forestry Trees for Community", GAWStatus: "Non-GAW", SubCategoryID: 15022},
	{Seq: 153, CategoryCode: "A", WorkType: "Bench Terrace", PermissibleWork: "Construction of Upland Bench Terrace for Individual", GAWStatus: "GAW", SubCategoryID: 9078},
	{Seq: 191, CategoryCode: "A", WorkType: "Trenches", PermissibleWork: "Construction of Continuous Contour Trench for Community", GAWStatus: "GAW", SubCategoryID: 2115},
	{Seq: 106, CategoryCode: "D", WorkType: "Storm water drains", PermissibleWork: "Repair and maintenance of intermediate and Link Storm Water Drain for Community", GAWStatus: "Non-GAW", SubCategoryID: 12016},
	{Seq: 101, CategoryCode: "D", WorkType: "Embankment", PermissibleWork: "Construction of Earthen Spur for Community", GAWStatus: "Non-GAW", SubCategoryID: 2073},
}
