package onboarding

// Stage is the onboarding phase a record is in.
type Stage int

const (
	NewMember Stage = iota
	Onboarding
	Completed
)

// StageFromCode maps a stored stage code back to a Stage.
// Codes written by other tools or older versions fall back to NewMember.
func StageFromCode(code int64) Stage {
	switch Stage(code) {
	case Onboarding:
		return Onboarding
	case Completed:
		return Completed
	default:
		return NewMember
	}
}

func (s Stage) Code() int64 {
	return int64(s)
}

func (s Stage) String() string {
	switch s {
	case NewMember:
		return "new_member"
	case Onboarding:
		return "onboarding"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}
