package driver

// Stage is the step a file is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageLoad
	StagePartition
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageLoad:
		return "loading"
	case StagePartition:
		return "splitting"
	case StageParse:
		return "parsing"
	default:
		return ""
	}
}

// Status is the state of a file within its stage.
type Status uint8

const (
	StatusWorking Status = iota
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusWorking:
		return "working"
	case StatusDone:
		return "ok"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Event reports progress of one file in a directory check.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
