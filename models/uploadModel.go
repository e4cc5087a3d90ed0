package models

// Spreadsheet rows carry the raw cell text exactly as read from the file.
// Parsing into numbers/booleans happens in the upload package after the
// structural validation gate has passed.

type CategoryRow struct {
	Name      string
	SortOrder string
	Index     int // 1-based position within the section
}

type TagRow struct {
	Name  string
	Color string
	Index int
}

type MenuItemRow struct {
	Name            string
	Description     string
	Price           string
	Categories      string // comma-separated category names
	Tags            string // comma-separated tag names
	FoodType        string
	IsSpicy         string
	SpicyLevel      string
	PreparationTime string
	IsAvailable     string
	Calories        string
	Protein         string
	Carbs           string
	Fat             string
	Allergens       string // comma-separated
	Index           int
}

// UploadDocument is the adapter's output. A nil slice means the section was
// absent from the source file; an empty slice means it was present but empty.
type UploadDocument struct {
	Categories []CategoryRow
	Tags       []TagRow
	MenuItems  []MenuItemRow
}

type SectionResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

type UploadSummary struct {
	TotalCreated int `json:"totalCreated"`
	TotalUpdated int `json:"totalUpdated"`
	TotalErrors  int `json:"totalErrors"`
}

type UploadResult struct {
	Categories SectionResult `json:"categories"`
	Tags       SectionResult `json:"tags"`
	MenuItems  SectionResult `json:"menuItems"`
}

func NewUploadResult() *UploadResult {
	return &UploadResult{
		Categories: SectionResult{Errors: []string{}},
		Tags:       SectionResult{Errors: []string{}},
		MenuItems:  SectionResult{Errors: []string{}},
	}
}

// Summary rolls the three section results up into the response totals.
func (r *UploadResult) Summary() UploadSummary {
	return UploadSummary{
		TotalCreated: r.Categories.Created + r.Tags.Created + r.MenuItems.Created,
		TotalUpdated: r.Categories.Updated + r.Tags.Updated + r.MenuItems.Updated,
		TotalErrors:  len(r.Categories.Errors) + len(r.Tags.Errors) + len(r.MenuItems.Errors),
	}
}
