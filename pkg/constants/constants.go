package constants

// Event types published to the broker.
const (
	MATCH_NEW = iota + 1
	MATCH_UPDATE
	MATCH_FINISHED
	SNAPSHOT_NEW
)

const SOURCE = "momentum-fc"

const TOPIC = "momentum-events"
