// Package resume composes a visitor's profile into a CV: the editable
// resume record, the three page layouts, HTML rendering and PDF export.
package resume

import (
	"github.com/carriereplus/storefront/core/profile"
	"github.com/carriereplus/storefront/validate"
)

type Experience struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Location    string `json:"location"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

type Language struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

type Section string

const (
	SectionObjective      Section = "objective"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionLanguages      Section = "languages"
	SectionInterests      Section = "interests"
	SectionCertifications Section = "certifications"
)

var Sections = []Section{
	SectionObjective,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionLanguages,
	SectionInterests,
	SectionCertifications,
}

func (s Section) Valid() bool {
	for _, v := range Sections {
		if s == v {
			return true
		}
	}
	return false
}

// Visibility toggles sections on and off. A section missing from the map
// is shown.
type Visibility map[Section]bool

func (v Visibility) Visible(s Section) bool {
	shown, ok := v[s]
	return !ok || shown
}

func AllVisible() Visibility {
	v := make(Visibility, len(Sections))
	for _, s := range Sections {
		v[s] = true
	}
	return v
}

type Style struct {
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	FontScale      float64 `json:"fontScale"`
	ShowPhoto      bool    `json:"showPhoto"`
}

const (
	MinFontScale = 0.8
	MaxFontScale = 1.2
)

func DefaultStyle() Style {
	return Style{
		PrimaryColor:   "#2563eb",
		SecondaryColor: "#f3f4f6",
		FontScale:      1,
		ShowPhoto:      true,
	}
}

type Resume struct {
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Location       string          `json:"location"`
	Photo          string          `json:"profilePicture"`
	JobTitle       string          `json:"jobTitle"`
	Objective      string          `json:"objective"`
	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Interests      []string        `json:"interests"`
	Sections       Visibility      `json:"sections"`
	Style          Style           `json:"style"`
}

const (
	defaultJobTitle  = "Développeur Web"
	defaultObjective = "Professionnel passionné par le développement web et les nouvelles technologies, à la recherche de nouvelles opportunités pour mettre à profit mes compétences."
)

// FromProfile seeds a resume from the visitor's profile. Lists the profile
// leaves empty get the builder's sample content so a first preview is
// never blank.
func FromProfile(p profile.Profile) Resume {
	r := Resume{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Location:  p.Location,
		Photo:     p.ProfilePicture,
		JobTitle:  p.JobTitle,
		Objective: p.Objective,
		Skills:    append([]string(nil), p.Skills...),
		Interests: append([]string(nil), p.Interests...),
		Sections:  AllVisible(),
		Style:     DefaultStyle(),
	}

	if r.JobTitle == "" {
		r.JobTitle = defaultJobTitle
	}
	if r.Objective == "" {
		r.Objective = defaultObjective
	}

	for _, e := range p.Experience {
		r.Experience = append(r.Experience, Experience{
			ID:       validate.GenerateID(),
			Position: e.Position,
			Company:  e.Company,
			Period:   e.Period,
		})
	}
	for _, e := range p.Education {
		r.Education = append(r.Education, Education{
			ID:     validate.GenerateID(),
			Degree: e.Degree,
			School: e.School,
			Year:   e.Year,
		})
	}

	if len(r.Skills) == 0 {
		r.Skills = []string{"HTML/CSS", "JavaScript", "React", "Node.js", "Next.js"}
	}
	if len(r.Interests) == 0 {
		r.Interests = []string{"Développement web", "Nouvelles technologies", "Open source", "Photographie"}
	}
	if len(r.Experience) == 0 {
		r.Experience = []Experience{{
			ID:          validate.GenerateID(),
			Position:    "Développeur Frontend",
			Company:     "Entreprise ABC",
			Location:    "Paris, France",
			Period:      "2020 - Présent",
			Description: "Développement d'applications web avec React et Next.js.",
		}}
	}
	if len(r.Education) == 0 {
		r.Education = []Education{{
			ID:          validate.GenerateID(),
			Degree:      "Master en Informatique",
			School:      "Université XYZ",
			Location:    "Lyon, France",
			Year:        "2018 - 2020",
			Description: "Spécialisation en développement web et applications mobiles.",
		}}
	}

	r.Languages = []Language{
		{ID: validate.GenerateID(), Name: "Français", Level: "Natif"},
		{ID: validate.GenerateID(), Name: "Anglais", Level: "Courant"},
		{ID: validate.GenerateID(), Name: "Espagnol", Level: "Intermédiaire"},
	}
	r.Certifications = []Certification{
		{ID: validate.GenerateID(), Name: "Certification Next.js", Issuer: "Vercel", Year: "2023"},
		{ID: validate.GenerateID(), Name: "Certification React Avancé", Issuer: "Meta", Year: "2022"},
	}

	return r
}

// ResumeUp is a partial update of the scalar fields, style and section
// flags. Lists are edited entry by entry.
type ResumeUp struct {
	FirstName      *string         `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string         `json:"lastName" validate:"omitempty,max=100"`
	Email          *string         `json:"email" validate:"omitempty,email"`
	Phone          *string         `json:"phone" validate:"omitempty,max=30"`
	Location       *string         `json:"location" validate:"omitempty,max=200"`
	Photo          *string         `json:"profilePicture" validate:"omitempty,max=2048"`
	JobTitle       *string         `json:"jobTitle" validate:"omitempty,max=200"`
	Objective      *string         `json:"objective" validate:"omitempty,max=2000"`
	PrimaryColor   *string         `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor *string         `json:"secondaryColor" validate:"omitempty,hexcolor"`
	FontScale      *float64        `json:"fontScale" validate:"omitempty,gte=0.8,lte=1.2"`
	ShowPhoto      *bool           `json:"showPhoto"`
	Sections       map[string]bool `json:"sections"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply merges up into r. Unknown section names are rejected before any
// field is touched.
func (r *Resume) Apply(up ResumeUp) error {
	for name := range up.Sections {
		if !Section(name).Valid() {
			return ErrUnknownSection
		}
	}

	set(&r.FirstName, up.FirstName)
	set(&r.LastName, up.LastName)
	set(&r.Email, up.Email)
	set(&r.Phone, up.Phone)
	set(&r.Location, up.Location)
	set(&r.Photo, up.Photo)
	set(&r.JobTitle, up.JobTitle)
	set(&r.Objective, up.Objective)
	set(&r.Style.PrimaryColor, up.PrimaryColor)
	set(&r.Style.SecondaryColor, up.SecondaryColor)
	set(&r.Style.FontScale, up.FontScale)
	set(&r.Style.ShowPhoto, up.ShowPhoto)

	if len(up.Sections) > 0 {
		sections := make(Visibility, len(r.Sections)+len(up.Sections))
		for k, v := range r.Sections {
			sections[k] = v
		}
		for k, v := range up.Sections {
			sections[Section(k)] = v
		}
		r.Sections = sections
	}
	return nil
}

// Toggle flips the visibility of s.
func (r *Resume) Toggle(s Section) error {
	if !s.Valid() {
		return ErrUnknownSection
	}
	sections := make(Visibility, len(r.Sections)+1)
	for k, v := range r.Sections {
		sections[k] = v
	}
	sections[s] = !r.Sections.Visible(s)
	r.Sections = sections
	return nil
}
