package importfile

// CategoryRecord is one category as it appears in an import document.
// Optional scalars are pointers so that absence can be told apart from
// zero values.
type CategoryRecord struct {
	ID                int64   `json:"id" yaml:"id" validate:"gt=0"`
	Title             string  `json:"title" yaml:"title" validate:"required,max=255"`
	EnglishTitle      *string `json:"english_title" yaml:"english_title" validate:"omitempty,max=255"`
	Description       *string `json:"description" yaml:"description"`
	Image             *string `json:"image" yaml:"image" validate:"omitempty,max=500"`
	Icon              *string `json:"icon" yaml:"icon" validate:"omitempty,max=500"`
	Brand             *string `json:"brand" yaml:"brand" validate:"omitempty,max=255"`
	Order             *int    `json:"order" yaml:"order"`
	Visible           *bool   `json:"visible" yaml:"visible"`
	IsActive          *bool   `json:"is_active" yaml:"is_active"`
	FilterableByBrand *bool   `json:"filterable_by_brand" yaml:"filterable_by_brand"`
	BackgroundColor   *string `json:"background_color" yaml:"background_color" validate:"omitempty,max=20"`
	AbsoluteURL       *string `json:"absolute_url" yaml:"absolute_url" validate:"omitempty,max=500"`
	CategoryParent    *int64  `json:"category_parent" yaml:"category_parent"`
}

// ParentID returns the referenced parent, treating null and 0 as none
func (r CategoryRecord) ParentID() (int64, bool) {
	if r.CategoryParent == nil || *r.CategoryParent == 0 {
		return 0, false
	}
	return *r.CategoryParent, true
}

// BrandRecord is one brand as it appears in an import document
type BrandRecord struct {
	ID    int64  `json:"id" yaml:"id" validate:"required"`
	Slug  string `json:"slug" yaml:"slug" validate:"required,max=255"`
	Name1 string `json:"name1" yaml:"name1" validate:"required,max=255"`
	Name2 string `json:"name2" yaml:"name2" validate:"required,max=255"`
}
