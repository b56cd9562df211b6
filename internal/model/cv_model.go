package model

// CV is the validated, schema-conformant record produced by one successful
// extraction run. It is never mutated after validation.
type CV struct {
	Contact    Contact      `json:"contact"`
	Name       string       `json:"name" validate:"required"`
	Title      string       `json:"title"`
	Location   string       `json:"location"`
	Summary    string       `json:"summary"`
	Skills     Skills       `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

type Contact struct {
	Github   string `json:"github"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email" validate:"required,email"`
	Linkedin string `json:"linkedin"`
}

type Skills struct {
	MainSkills []string   `json:"mainSkills"`
	Languages  []Language `json:"languages"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Duration    string   `json:"duration"`
	Location    string   `json:"location"`
	Description []string `json:"description,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Period      string `json:"period"`
}
