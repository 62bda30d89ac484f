package persist

// Status is the save indicator shown to the learner.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText makes Status render as its name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
