package learner

import "fmt"

type ContestResult struct {
	CandidateWins int
	IncumbentWins int
	Draws         int
}

func (r ContestResult) Total() int {
	return r.CandidateWins + r.IncumbentWins + r.Draws
}

func (r ContestResult) Decisive() int {
	return r.CandidateWins + r.IncumbentWins
}

// WinRate is the candidate's share of decisive games, 0 without any.
func (r ContestResult) WinRate() float64 {
	if r.Decisive() == 0 {
		return 0
	}
	return float64(r.CandidateWins) / float64(r.Decisive())
}

func (r ContestResult) String() string {
	return fmt.Sprintf("%d/%d/%d", r.CandidateWins, r.IncumbentWins, r.Draws)
}

type Decision int

const (
	Reject Decision = iota
	Accept
)

func (d Decision) String() string {
	if d == Accept {
		return "ACCEPT"
	}
	return "REJECT"
}

// Promote decides whether the candidate replaces the incumbent. A contest
// without decisive games is rejected, and so is one where the candidate's
// win rate exceeds threshold; anything else is accepted.
//
// Note the comparison runs opposite to the usual "promote when the candidate
// wins often enough".
func Promote(result ContestResult, threshold float64) Decision {
	if result.Decisive() == 0 {
		return Reject
	}
	if result.WinRate() > threshold {
		return Reject
	}
	return Accept
}
