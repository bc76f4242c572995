package contact

type SubmissionStatus string

const (
	SubmissionStatusNew     SubmissionStatus = "new"
	SubmissionStatusReplied SubmissionStatus = "replied"
	SubmissionStatusClosed  SubmissionStatus = "closed"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusNew, SubmissionStatusReplied, SubmissionStatusClosed:
		return true
	default:
		return false
	}
}
