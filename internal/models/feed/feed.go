package feed

// MatchesResponse is the envelope of the football-data.org /v4/matches
// endpoint.
type MatchesResponse struct {
	Matches []*Match `json:"matches"`
}

type Match struct {
	ID          int64       `json:"id"`
	UTCDate     string      `json:"utcDate"`
	Status      string      `json:"status"`
	HomeTeam    Team        `json:"homeTeam"`
	AwayTeam    Team        `json:"awayTeam"`
	Score       Score       `json:"score"`
	Competition Competition `json:"competition"`
}

type Team struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Competition struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Score struct {
	FullTime ScoreLine `json:"fullTime"`
}

// ScoreLine carries nullable goal counts: the feed reports null before any
// score is known.
type ScoreLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// ErrorResponse is the upstream error body on non-2xx responses.
type ErrorResponse struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode,omitempty"`
}
