package model

type State struct {
	// Id always equals one
	Id int

	// Current factory owner
	Owner string

	// Sequence number of the last event flushed to the database
	LastSequence uint64
}

func (State) TableName() string {
	return "factory_state"
}
