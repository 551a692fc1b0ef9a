package resume

import (
	"errors"
	"slices"
	"strconv"

	"github.com/carriereplus/storefront/validate"
)

var (
	ErrUnknownList    = errors.New("unknown list")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownSection = errors.New("unknown section")
	ErrEntryNotFound  = errors.New("entry not found")
)

// List names an editable list of the resume.
type List string

const (
	ListSkills         List = "skills"
	ListInterests      List = "interests"
	ListExperience     List = "experience"
	ListEducation      List = "education"
	ListLanguages      List = "languages"
	ListCertifications List = "certifications"
)

// Skills and interests are plain strings addressed by their position;
// every other list holds records addressed by id.

type record[T any] interface {
	entryID() string
	with(field, value string) (T, error)
}

func (e Experience) entryID() string { return e.ID }

func (e Experience) with(field, value string) (Experience, error) {
	switch field {
	case "position":
		e.Position = value
	case "company":
		e.Company = value
	case "location":
		e.Location = value
	case "period":
		e.Period = value
	case "description":
		e.Description = value
	default:
		return e, ErrUnknownField
	}
	return e, nil
}

func (e Education) entryID() string { return e.ID }

func (e Education) with(field, value string) (Education, error) {
	switch field {
	case "degree":
		e.Degree = value
	case "school":
		e.School = value
	case "location":
		e.Location = value
	case "year":
		e.Year = value
	case "description":
		e.Description = value
	default:
		return e, ErrUnknownField
	}
	return e, nil
}

func (l Language) entryID() string { return l.ID }

func (l Language) with(field, value string) (Language, error) {
	switch field {
	case "name":
		l.Name = value
	case "level":
		l.Level = value
	default:
		return l, ErrUnknownField
	}
	return l, nil
}

func (c Certification) entryID() string { return c.ID }

func (c Certification) with(field, value string) (Certification, error) {
	switch field {
	case "name":
		c.Name = value
	case "issuer":
		c.Issuer = value
	case "year":
		c.Year = value
	default:
		return c, ErrUnknownField
	}
	return c, nil
}

// replaceByID returns a copy of s with the entry id rewritten by fields.
// The input slice is never modified.
func replaceByID[T record[T]](s []T, id string, fields map[string]string) ([]T, error) {
	i := slices.IndexFunc(s, func(v T) bool { return v.entryID() == id })
	if i < 0 {
		return nil, ErrEntryNotFound
	}

	v := s[i]
	for f, val := range fields {
		var err error
		if v, err = v.with(f, val); err != nil {
			return nil, err
		}
	}

	out := slices.Clone(s)
	out[i] = v
	return out, nil
}

func removeByID[T record[T]](s []T, id string) []T {
	return slices.DeleteFunc(slices.Clone(s), func(v T) bool { return v.entryID() == id })
}

func index(s []string, id string) (int, error) {
	i, err := strconv.Atoi(id)
	if err != nil || i < 0 || i >= len(s) {
		return 0, ErrEntryNotFound
	}
	return i, nil
}

// Add appends a blank entry to list and returns its identifier.
func (r *Resume) Add(list List) (string, error) {
	id := validate.GenerateID()

	switch list {
	case ListSkills:
		r.Skills = append(slices.Clone(r.Skills), "")
		return strconv.Itoa(len(r.Skills) - 1), nil
	case ListInterests:
		r.Interests = append(slices.Clone(r.Interests), "")
		return strconv.Itoa(len(r.Interests) - 1), nil
	case ListExperience:
		r.Experience = append(slices.Clone(r.Experience), Experience{ID: id})
	case ListEducation:
		r.Education = append(slices.Clone(r.Education), Education{ID: id})
	case ListLanguages:
		r.Languages = append(slices.Clone(r.Languages), Language{ID: id})
	case ListCertifications:
		r.Certifications = append(slices.Clone(r.Certifications), Certification{ID: id})
	default:
		return "", ErrUnknownList
	}
	return id, nil
}

// Update rewrites the given fields of one entry. String lists take their
// new text under the "value" field.
func (r *Resume) Update(list List, id string, fields map[string]string) error {
	var err error

	switch list {
	case ListSkills:
		r.Skills, err = setString(r.Skills, id, fields)
	case ListInterests:
		r.Interests, err = setString(r.Interests, id, fields)
	case ListExperience:
		var out []Experience
		if out, err = replaceByID(r.Experience, id, fields); err == nil {
			r.Experience = out
		}
	case ListEducation:
		var out []Education
		if out, err = replaceByID(r.Education, id, fields); err == nil {
			r.Education = out
		}
	case ListLanguages:
		var out []Language
		if out, err = replaceByID(r.Languages, id, fields); err == nil {
			r.Languages = out
		}
	case ListCertifications:
		var out []Certification
		if out, err = replaceByID(r.Certifications, id, fields); err == nil {
			r.Certifications = out
		}
	default:
		err = ErrUnknownList
	}
	return err
}

func setString(s []string, id string, fields map[string]string) ([]string, error) {
	i, err := index(s, id)
	if err != nil {
		return s, err
	}
	for f := range fields {
		if f != "value" {
			return s, ErrUnknownField
		}
	}

	v, ok := fields["value"]
	if !ok {
		return s, nil
	}
	out := slices.Clone(s)
	out[i] = v
	return out, nil
}

// Remove filters the entry out of list. Removing an unknown id is a no-op.
func (r *Resume) Remove(list List, id string) error {
	switch list {
	case ListSkills:
		if i, err := index(r.Skills, id); err == nil {
			r.Skills = slices.Delete(slices.Clone(r.Skills), i, i+1)
		}
	case ListInterests:
		if i, err := index(r.Interests, id); err == nil {
			r.Interests = slices.Delete(slices.Clone(r.Interests), i, i+1)
		}
	case ListExperience:
		r.Experience = removeByID(r.Experience, id)
	case ListEducation:
		r.Education = removeByID(r.Education, id)
	case ListLanguages:
		r.Languages = removeByID(r.Languages, id)
	case ListCertifications:
		r.Certifications = removeByID(r.Certifications, id)
	default:
		return ErrUnknownList
	}
	return nil
}
