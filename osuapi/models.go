package osuapi

// Beatmap is the metadata the osu! API v2 returns for one difficulty.
// Fields are trimmed to what the geometry pipeline and its cache use.
type Beatmap struct {
	ID               int        `json:"id"`
	BeatmapsetID     int        `json:"beatmapset_id"`
	Mode             string     `json:"mode"`
	Status           string     `json:"status"`
	Version          string     `json:"version"`
	Bpm              float64    `json:"bpm"`
	Cs               float64    `json:"cs"`
	Ar               float64    `json:"ar"`
	Accuracy         float64    `json:"accuracy"`
	Drain            float64    `json:"drain"`
	CountCircles     int        `json:"count_circles"`
	CountSliders     int        `json:"count_sliders"`
	CountSpinners    int        `json:"count_spinners"`
	HitLength        int        `json:"hit_length"`
	TotalLength      int        `json:"total_length"`
	MaxCombo         int        `json:"max_combo"`
	DifficultyRating float64    `json:"difficulty_rating"`
	Checksum         string     `json:"checksum"`
	Beatmapset       Beatmapset `json:"beatmapset"`
}

// Beatmapset groups the difficulties of one mapset.
type Beatmapset struct {
	ID            int     `json:"id"`
	Artist        string  `json:"artist"`
	ArtistUnicode string  `json:"artist_unicode"`
	Title         string  `json:"title"`
	TitleUnicode  string  `json:"title_unicode"`
	Creator       string  `json:"creator"`
	Status        string  `json:"status"`
	Bpm           float64 `json:"bpm"`
	PlayCount     int     `json:"play_count"`
	Ranked        int     `json:"ranked"`
}
