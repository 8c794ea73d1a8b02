package entity

type Event string

const (
	EventElectionCreated   Event = "election_created"
	EventElectionUpdated   Event = "election_updated"
	EventElectionScheduled Event = "election_scheduled"
	EventElectionStarted   Event = "election_started"
	EventElectionClosed    Event = "election_closed"
	EventElectionDeleted   Event = "election_deleted"
	EventVoteCast          Event = "vote_cast"
	EventResultsPublished  Event = "results_published"
)
