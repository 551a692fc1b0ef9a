// Package profile holds the visitor's user record. There is no account
// system: every session starts from the demo user and edits its own copy.
package profile

type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

type Experience struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	Period   string `json:"period"`
}

type Profile struct {
	Email          string       `json:"email"`
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Phone          string       `json:"phone"`
	Bio            string       `json:"bio"`
	Location       string       `json:"location"`
	ProfilePicture string       `json:"profilePicture"`
	JobTitle       string       `json:"jobTitle"`
	Objective      string       `json:"objective"`
	Skills         []string     `json:"skills"`
	Interests      []string     `json:"interests"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
}

// ProfileUp is a partial update; nil fields are left untouched.
type ProfileUp struct {
	Email          *string       `json:"email" validate:"omitempty,email"`
	FirstName      *string       `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string       `json:"lastName" validate:"omitempty,max=100"`
	Phone          *string       `json:"phone" validate:"omitempty,max=30"`
	Bio            *string       `json:"bio" validate:"omitempty,max=2000"`
	Location       *string       `json:"location" validate:"omitempty,max=200"`
	ProfilePicture *string       `json:"profilePicture" validate:"omitempty,max=2048"`
	JobTitle       *string       `json:"jobTitle" validate:"omitempty,max=200"`
	Objective      *string       `json:"objective" validate:"omitempty,max=2000"`
	Skills         *[]string     `json:"skills"`
	Interests      *[]string     `json:"interests"`
	Education      *[]Education  `json:"education"`
	Experience     *[]Experience `json:"experience"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply merges up into p.
func (p *Profile) Apply(up ProfileUp) {
	set(&p.Email, up.Email)
	set(&p.FirstName, up.FirstName)
	set(&p.LastName, up.LastName)
	set(&p.Phone, up.Phone)
	set(&p.Bio, up.Bio)
	set(&p.Location, up.Location)
	set(&p.ProfilePicture, up.ProfilePicture)
	set(&p.JobTitle, up.JobTitle)
	set(&p.Objective, up.Objective)
	set(&p.Skills, up.Skills)
	set(&p.Interests, up.Interests)
	set(&p.Education, up.Education)
	set(&p.Experience, up.Experience)
}

// Demo is the profile every new session starts with.
func Demo() Profile {
	return Profile{
		Email:          "demo@carriereplus.fr",
		FirstName:      "Jean",
		LastName:       "Dupont",
		Phone:          "06 12 34 56 78",
		Bio:            "Professionnel en reconversion dans le développement web. Passionné par les nouvelles technologies et l'apprentissage continu.",
		Location:       "Paris, France",
		ProfilePicture: "/placeholder.svg?height=200&width=200&text=JD",
		JobTitle:       "Developpeur Web",
		Objective:      "Objectif",
		Skills:         []string{"Communication", "Travail d'équipe", "Adaptabilité", "Gestion de projet"},
		Interests:      []string{"Développement web", "Intelligence artificielle", "UX/UI Design"},
		Education: []Education{
			{Degree: "Master en Marketing Digital", School: "Université de Paris", Year: "2018"},
		},
		Experience: []Experience{
			{Position: "Chef de Projet Marketing", Company: "Agence Digitale", Period: "2018 - 2023"},
		},
	}
}
