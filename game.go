// Package gamecrm models game records kept in a HubSpot custom object and
// the rules for turning form submissions into CRM writes.
package gamecrm

import (
	"time"

	"github.com/icco/gamecrm/hubspot"
)

// HubSpot internal property names for the Games object.
const (
	PropGameName             = "game_name"
	PropGenre                = "genre"
	PropReleaseDate          = "release_date"
	PropPlatformAvailability = "platform_availability"
	PropRating               = "esrb__pegi_rating"
	PropDevelopmentStatus    = "development_status"
	PropBasePrice            = "base_price"
	PropGlobalSales          = "global_sales__player_count"
	PropLeadDeveloper        = "lead_developer__studio"
	PropGameEngine           = "game_engine"
	PropStoreURL             = "store_url"
)

// ListProperties are requested on every list call.
var ListProperties = []string{
	PropGameName,
	PropGenre,
	PropReleaseDate,
	PropPlatformAvailability,
	PropRating,
	PropDevelopmentStatus,
	PropBasePrice,
	PropGlobalSales,
	PropLeadDeveloper,
	PropGameEngine,
	PropStoreURL,
}

// Game is one record of the Games object. ID is assigned by HubSpot.
type Game struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"game_name"`
	Genre                string    `json:"genre"`
	ReleaseDate          string    `json:"release_date"`
	PlatformAvailability string    `json:"platform_availability"`
	Rating               string    `json:"rating"`
	DevelopmentStatus    string    `json:"development_status"`
	BasePrice            string    `json:"base_price"`
	GlobalSales          string    `json:"global_sales"`
	LeadDeveloper        string    `json:"lead_developer"`
	GameEngine           string    `json:"game_engine"`
	StoreURL             string    `json:"store_url"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Archived             bool      `json:"archived"`
}

// GameFromObject maps a CRM object onto a Game. Missing properties are empty.
func GameFromObject(o hubspot.Object) Game {
	p := o.Properties
	return Game{
		ID:                   o.ID,
		Name:                 p[PropGameName],
		Genre:                p[PropGenre],
		ReleaseDate:          p[PropReleaseDate],
		PlatformAvailability: p[PropPlatformAvailability],
		Rating:               p[PropRating],
		DevelopmentStatus:    p[PropDevelopmentStatus],
		BasePrice:            p[PropBasePrice],
		GlobalSales:          p[PropGlobalSales],
		LeadDeveloper:        p[PropLeadDeveloper],
		GameEngine:           p[PropGameEngine],
		StoreURL:             p[PropStoreURL],
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		Archived:             o.Archived,
	}
}

// GamesFromObjects maps a list response. The result is never nil.
func GamesFromObjects(objs []hubspot.Object) []Game {
	ret := make([]Game, 0, len(objs))
	for _, o := range objs {
		ret = append(ret, GameFromObject(o))
	}
	return ret
}

// Platforms reads PlatformAvailability leniently.
func (g Game) Platforms() []string {
	return SplitPlatforms(g.PlatformAvailability)
}

// HasPlatform reports whether p is one of the game's platforms.
func (g Game) HasPlatform(p string) bool {
	for _, v := range g.Platforms() {
		if v == p {
			return true
		}
	}
	return false
}

// FindGame does a linear search by id.
func FindGame(games []Game, id string) (Game, bool) {
	if id == "" {
		return Game{}, false
	}
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
