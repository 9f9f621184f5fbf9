package gamecrm

// Option is one entry of a select, checkbox group or datalist.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func options(values ...string) []Option {
	ret := make([]Option, len(values))
	for i, v := range values {
		ret[i] = Option{Label: v, Value: v}
	}
	return ret
}

// These mirror the enumeration values configured on the HubSpot properties.
var (
	GenreOptions = options(
		"RPG", "FPS", "Strategy", "Simulation", "Indie", "Action",
		"Adventure", "Puzzle", "Sports", "Racing", "Fighting", "Horror",
	)

	// RatingOptions covers both ESRB and PEGI.
	RatingOptions = options(
		"EC", "E", "E10+", "T", "M", "AO", "RP",
		"3+", "7+", "12+", "16+", "18+",
	)

	DevStatusOptions = options(
		"In Development", "Alpha", "Beta", "Released", "Sunsetting",
	)

	PlatformOptions = options(
		"PC", "PlayStation", "Xbox", "Switch", "Mobile",
	)

	// EngineOptions are suggestions only; game_engine also takes free text.
	EngineOptions = options(
		"Unreal Engine", "Unity", "Godot", "CryEngine", "GameMaker",
		"Frostbite", "Source", "Custom",
	)
)

// Catalog groups every option set the form needs.
type Catalog struct {
	Genres    []Option `json:"genre_options"`
	Ratings   []Option `json:"rating_options"`
	DevStatus []Option `json:"dev_status_options"`
	Platforms []Option `json:"platform_options"`
	Engines   []Option `json:"engine_options"`
}

// DefaultCatalog returns the fixed option sets.
func DefaultCatalog() Catalog {
	return Catalog{
		Genres:    GenreOptions,
		Ratings:   RatingOptions,
		DevStatus: DevStatusOptions,
		Platforms: PlatformOptions,
		Engines:   EngineOptions,
	}
}
