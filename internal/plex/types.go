package plex

// Album is one audiobook album in the remote library.
type Album struct {
	RatingKey string
	Title     string
	Author    string
	// DurationMillis is the album runtime reported by the server.
	DurationMillis int64
}

// Hours converts the album runtime into book hours.
func (a Album) Hours() float64 {
	return float64(a.DurationMillis) / (1000 * 60 * 60)
}

type mediaContainerResponse struct {
	MediaContainer struct {
		Size     int             `json:"size"`
		Metadata []albumMetadata `json:"Metadata"`
	} `json:"MediaContainer"`
}

type albumMetadata struct {
	RatingKey   string `json:"ratingKey"`
	Title       string `json:"title"`
	ParentTitle string `json:"parentTitle"`
	Duration    int64  `json:"duration"`
	Type        string `json:"type"`
}
