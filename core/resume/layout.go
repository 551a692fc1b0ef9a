package resume

import "errors"

var ErrUnknownTemplate = errors.New("unknown template")

type TemplateID string

const (
	Modern       TemplateID = "template1"
	Classic      TemplateID = "template2"
	Professional TemplateID = "template3"
)

const DefaultTemplate = Modern

// Block is one renderable piece of a page: an identity header, the
// contact lines, the photo or one of the resume sections.
type Block string

const (
	BlockIdentity Block = "identity"
	BlockContact  Block = "contact"
	BlockPhoto    Block = "photo"
)

// Region is a named area of a page holding blocks in display order.
type Region struct {
	Name   string  `json:"name"`
	Blocks []Block `json:"blocks"`
}

// Page is the resolved arrangement of a resume for one template.
// Hidden and empty sections never reach a page.
type Page struct {
	Template TemplateID `json:"template"`
	Regions  []Region   `json:"regions"`
	Resume   Resume     `json:"-"`
}

// Region returns the blocks of the named region.
func (p Page) Region(name string) []Block {
	for _, r := range p.Regions {
		if r.Name == name {
			return r.Blocks
		}
	}
	return nil
}

// Has reports whether b appears anywhere on the page.
func (p Page) Has(b Block) bool {
	for _, r := range p.Regions {
		for _, v := range r.Blocks {
			if v == b {
				return true
			}
		}
	}
	return false
}

type Template struct {
	ID          TemplateID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	regions     []regionSpec
}

type regionSpec struct {
	name   string
	blocks []Block
}

var templates = []Template{
	{
		ID:          Modern,
		Name:        "Moderne",
		Description: "Bandeau coloré et deux colonnes.",
		regions: []regionSpec{
			{name: "header", blocks: []Block{BlockIdentity, BlockPhoto}},
			{name: "contact", blocks: []Block{BlockContact}},
			{name: "intro", blocks: []Block{sectionBlock(SectionObjective)}},
			{name: "side", blocks: []Block{
				sectionBlock(SectionSkills),
				sectionBlock(SectionLanguages),
				sectionBlock(SectionInterests),
			}},
			{name: "main", blocks: []Block{
				sectionBlock(SectionExperience),
				sectionBlock(SectionEducation),
				sectionBlock(SectionCertifications),
			}},
		},
	},
	{
		ID:          Classic,
		Name:        "Classique",
		Description: "Barre latérale et contenu principal.",
		regions: []regionSpec{
			{name: "side", blocks: []Block{
				BlockPhoto,
				BlockContact,
				sectionBlock(SectionSkills),
				sectionBlock(SectionLanguages),
				sectionBlock(SectionInterests),
			}},
			{name: "main", blocks: []Block{
				BlockIdentity,
				sectionBlock(SectionObjective),
				sectionBlock(SectionExperience),
				sectionBlock(SectionEducation),
				sectionBlock(SectionCertifications),
			}},
		},
	},
	{
		ID:          Professional,
		Name:        "Professionnel",
		Description: "En-tête sobre et séparateur coloré.",
		regions: []regionSpec{
			{name: "header", blocks: []Block{BlockIdentity, BlockContact, BlockPhoto}},
			{name: "side", blocks: []Block{
				sectionBlock(SectionSkills),
				sectionBlock(SectionLanguages),
				sectionBlock(SectionInterests),
				sectionBlock(SectionCertifications),
			}},
			{name: "main", blocks: []Block{
				sectionBlock(SectionObjective),
				sectionBlock(SectionExperience),
				sectionBlock(SectionEducation),
			}},
		},
	},
}

func sectionBlock(s Section) Block { return Block(s) }

// Templates lists the available layouts.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Lookup finds a template by id. An empty id selects the default.
func Lookup(id TemplateID) (Template, error) {
	if id == "" {
		id = DefaultTemplate
	}
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrUnknownTemplate
}

// LookupOrDefault is Lookup falling back to the default template.
func LookupOrDefault(id TemplateID) Template {
	t, err := Lookup(id)
	if err != nil {
		t, _ = Lookup(DefaultTemplate)
	}
	return t
}

// Layout arranges r on the template's page.
func (t Template) Layout(r Resume) Page {
	p := Page{Template: t.ID, Resume: r}
	for _, rs := range t.regions {
		region := Region{Name: rs.name, Blocks: []Block{}}
		for _, b := range rs.blocks {
			if r.shows(b) {
				region.Blocks = append(region.Blocks, b)
			}
		}
		p.Regions = append(p.Regions, region)
	}
	return p
}

func (r Resume) shows(b Block) bool {
	switch b {
	case BlockIdentity:
		return true
	case BlockContact:
		return r.Email != "" || r.Phone != "" || r.Location != ""
	case BlockPhoto:
		return r.Style.ShowPhoto && r.Photo != ""
	}

	s := Section(b)
	if !r.Sections.Visible(s) {
		return false
	}

	switch s {
	case SectionObjective:
		return r.Objective != ""
	case SectionSkills:
		return len(r.Skills) > 0
	case SectionExperience:
		return len(r.Experience) > 0
	case SectionEducation:
		return len(r.Education) > 0
	case SectionLanguages:
		return len(r.Languages) > 0
	case SectionInterests:
		return len(r.Interests) > 0
	case SectionCertifications:
		return len(r.Certifications) > 0
	}
	return false
}
