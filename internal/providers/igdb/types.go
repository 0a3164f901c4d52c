package igdb

type genreResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type platformResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Abbreviation    string `json:"abbreviation"`
	AlternativeName string `json:"alternative_name"`
	PlatformType    int    `json:"platform_type"`
}

type coverResponse struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

type multiplayerModeResponse struct {
	ID                int  `json:"id"`
	Platform          int  `json:"platform"`
	CampaignCoop      bool `json:"campaigncoop"`
	DropIn            bool `json:"dropin"`
	LANCoop           bool `json:"lancoop"`
	OfflineCoop       bool `json:"offlinecoop"`
	OfflineCoopMax    int  `json:"offlinecoopmax"`
	OfflineMax        int  `json:"offlinemax"`
	OnlineCoop        bool `json:"onlinecoop"`
	OnlineCoopMax     int  `json:"onlinecoopmax"`
	OnlineMax         int  `json:"onlinemax"`
	SplitScreen       bool `json:"splitscreen"`
	SplitScreenOnline bool `json:"splitscreenonline"`
}

type gameResponse struct {
	ID               int                       `json:"id"`
	Name             string                    `json:"name"`
	Cover            *coverResponse            `json:"cover"`
	Rating           *float64                  `json:"rating"`
	Platforms        []int                     `json:"platforms"`
	GameType         *int                      `json:"game_type"`
	TotalRating      *float64                  `json:"total_rating"`
	TotalRatingCount *int                      `json:"total_rating_count"`
	Storyline        string                    `json:"storyline"`
	Summary          string                    `json:"summary"`
	Genres           []int                     `json:"genres"`
	MultiplayerModes []multiplayerModeResponse `json:"multiplayer_modes"`
}
