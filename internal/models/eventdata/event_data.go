package eventdata

import (
	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

// Envelopes published to the broker, one per lifecycle event.

type Match struct {
	EventType int                  `json:"eventType"`
	Source    string               `json:"source"`
	Data      []*domain.MatchState `json:"data"`
}

type MatchUpd struct {
	EventType int                  `json:"eventType"`
	Source    string               `json:"source"`
	Data      []*domain.MatchState `json:"data"`
}

type FinishedMatch struct {
	EventType int     `json:"eventType"`
	Source    string  `json:"source"`
	Data      []int64 `json:"data"`
}

type SnapshotNew struct {
	EventType int                `json:"eventType"`
	Source    string             `json:"source"`
	Data      []*domain.Snapshot `json:"data"`
}
