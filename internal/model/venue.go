package model

// VenueOption describes one of the walk-in areas a visitor can reserve
// (racing simulator, VR arena, computer room and so on).  Venue options
// are immutable reference data seeded from configuration.
//
// Fields:
//  ID          – stable identifier used in pricing tables and drafts.
//  Title       – bilingual display title.
//  Description – bilingual short description.
//  Icon        – icon name rendered by the front end.
type VenueOption struct {
	ID          string        `json:"id"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Icon        string        `json:"icon"`
}

// DefaultVenueOptions returns the built-in walk-in areas.  The ids
// line up with the default pricing table.
func DefaultVenueOptions() []VenueOption {
	return []VenueOption{
		{
			ID:          "f1",
			Title:       LocalizedText{TR: "Yarış Simülatörü", EN: "Racing Simulator"},
			Description: LocalizedText{TR: "Profesyonel F1 simülasyon kokpitleri", EN: "Professional F1 simulation cockpits"},
			Icon:        "steering-wheel",
		},
		{
			ID:          "vr",
			Title:       LocalizedText{TR: "VR Alanı", EN: "VR Arena"},
			Description: LocalizedText{TR: "Serbest dolaşımlı sanal gerçeklik alanı", EN: "Free-roam virtual reality arena"},
			Icon:        "vr-headset",
		},
		{
			ID:          "pc",
			Title:       LocalizedText{TR: "Bilgisayar Salonu", EN: "Computer Room"},
			Description: LocalizedText{TR: "Yüksek performanslı oyun bilgisayarları", EN: "High-end gaming computers"},
			Icon:        "desktop",
		},
		{
			ID:          "console",
			Title:       LocalizedText{TR: "Konsol Köşesi", EN: "Console Corner"},
			Description: LocalizedText{TR: "Son nesil konsollar ve geniş ekranlar", EN: "Latest-generation consoles and big screens"},
			Icon:        "gamepad",
		},
	}
}
