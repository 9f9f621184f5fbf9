package gamecrm

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Form field names posted by the update form.
const (
	FieldExistingID           = "existing_id"
	FieldGameName             = "game_name"
	FieldGenre                = "genre"
	FieldReleaseDate          = "release_date"
	FieldPlatformAvailability = "platform_availability"
	FieldRating               = "rating"
	FieldDevelopmentStatus    = "development_status"
	FieldBasePrice            = "base_price"
	FieldGlobalSales          = "global_sales"
	FieldLeadDeveloper        = "lead_developer"
	FieldGameEngine           = "game_engine"
	FieldStoreURL             = "store_url"
)

// MutationKind says which CRM write a submission turns into.
type MutationKind int

const (
	// MutationCreate posts a new record.
	MutationCreate MutationKind = iota
	// MutationUpdate patches the record named by Mutation.ID.
	MutationUpdate
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	default:
		return fmt.Sprintf("MutationKind(%d)", int(k))
	}
}

// Mutation is the classified result of a Submission.
type Mutation struct {
	Kind       MutationKind
	ID         string
	Properties map[string]string
}

// Submission is what the form (or a JSON client) sent. GameName is nil when
// the field was absent altogether.
type Submission struct {
	ExistingID        string
	GameName          *string
	Genre             string
	ReleaseDate       string
	Platforms         []string
	Rating            string
	DevelopmentStatus string
	BasePrice         string
	GlobalSales       string
	LeadDeveloper     string
	GameEngine        string
	StoreURL          string
}

// SubmissionFromForm reads a parsed urlencoded or multipart form. Checkbox
// groups arrive as repeated keys; "platform_availability[]" is accepted too.
func SubmissionFromForm(form url.Values) Submission {
	s := Submission{
		ExistingID:        strings.TrimSpace(form.Get(FieldExistingID)),
		Genre:             form.Get(FieldGenre),
		ReleaseDate:       form.Get(FieldReleaseDate),
		Rating:            form.Get(FieldRating),
		DevelopmentStatus: form.Get(FieldDevelopmentStatus),
		BasePrice:         form.Get(FieldBasePrice),
		GlobalSales:       form.Get(FieldGlobalSales),
		LeadDeveloper:     form.Get(FieldLeadDeveloper),
		GameEngine:        form.Get(FieldGameEngine),
		StoreURL:          form.Get(FieldStoreURL),
	}

	if v, ok := form[FieldGameName]; ok && len(v) > 0 {
		name := v[0]
		s.GameName = &name
	}

	platforms := form[FieldPlatformAvailability]
	if len(platforms) == 0 {
		platforms = form[FieldPlatformAvailability+"[]"]
	}
	s.Platforms = NormalizePlatforms(platforms)

	return s
}

// platformInput accepts a JSON string or a JSON array of strings.
type platformInput struct {
	values []string
	list   bool
}

func (p *platformInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		p.values, p.list = list, true
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("platform_availability must be a string or list of strings: %w", err)
	}
	p.values = []string{single}
	return nil
}

// quantityInput accepts a JSON string or number. Numbers keep their literal
// text, so 59.99 is sent on as "59.99".
type quantityInput string

func (q *quantityInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*q = quantityInput(n.String())
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("must be a string or number: %w", err)
	}
	*q = quantityInput(str)
	return nil
}

type submissionJSON struct {
	ExistingID        string        `json:"existing_id"`
	GameName          *string       `json:"game_name"`
	Genre             string        `json:"genre"`
	ReleaseDate       string        `json:"release_date"`
	Platforms         platformInput `json:"platform_availability"`
	Rating            string        `json:"rating"`
	DevelopmentStatus string        `json:"development_status"`
	BasePrice         quantityInput `json:"base_price"`
	GlobalSales       quantityInput `json:"global_sales"`
	LeadDeveloper     string        `json:"lead_developer"`
	GameEngine        string        `json:"game_engine"`
	StoreURL          string        `json:"store_url"`
}

// SubmissionFromJSON decodes a JSON body with the same field names as the
// form. A JSON array of platforms is cleaned as a list even when it has a
// single element.
func SubmissionFromJSON(data []byte) (Submission, error) {
	var in submissionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return Submission{}, err
	}

	platforms := NormalizePlatforms(in.Platforms.values)
	if in.Platforms.list {
		platforms = CleanPlatforms(in.Platforms.values)
	}

	return Submission{
		ExistingID:        strings.TrimSpace(in.ExistingID),
		GameName:          in.GameName,
		Genre:             in.Genre,
		ReleaseDate:       in.ReleaseDate,
		Platforms:         platforms,
		Rating:            in.Rating,
		DevelopmentStatus: in.DevelopmentStatus,
		BasePrice:         string(in.BasePrice),
		GlobalSales:       string(in.GlobalSales),
		LeadDeveloper:     in.LeadDeveloper,
		GameEngine:        in.GameEngine,
		StoreURL:          in.StoreURL,
	}, nil
}

// Properties maps the submission onto HubSpot property names. Optional fields
// are always present, empty when not submitted. game_name is only included
// when it was submitted.
func (s Submission) Properties() map[string]string {
	props := map[string]string{
		PropGenre:                s.Genre,
		PropReleaseDate:          s.ReleaseDate,
		PropPlatformAvailability: JoinPlatforms(s.Platforms),
		PropRating:               s.Rating,
		PropDevelopmentStatus:    s.DevelopmentStatus,
		PropBasePrice:            s.BasePrice,
		PropGlobalSales:          s.GlobalSales,
		PropLeadDeveloper:        s.LeadDeveloper,
		PropGameEngine:           s.GameEngine,
		PropStoreURL:             s.StoreURL,
	}
	if s.GameName != nil {
		props[PropGameName] = *s.GameName
	}
	return props
}

// Classify decides between create and update by whether an existing id was
// submitted. No lookup is made.
func (s Submission) Classify() Mutation {
	m := Mutation{Kind: MutationCreate, Properties: s.Properties()}
	if id := strings.TrimSpace(s.ExistingID); id != "" {
		m.Kind = MutationUpdate
		m.ID = id
	}
	return m
}
