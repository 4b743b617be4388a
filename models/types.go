package models

import "time"

// Voter tiers for vote-weight caps
const (
	TierMember = "member"
	TierPublic = "public"
)

// Tier names the voter tier for a membership flag.
func Tier(member bool) string {
	if member {
		return TierMember
	}
	return TierPublic
}

// Request types

type CreateBookRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	ISBN        *string `json:"isbn,omitempty"`
	Length      *int    `json:"length,omitempty"`
}

type CreateNominationRequest struct {
	BookID      int64 `json:"book_id"`
	NominatorID int64 `json:"nominator_id"`
	MessageID   int64 `json:"message_id"`
	Reactions   int   `json:"reactions"`
}

type UpdateNominationRequest struct {
	Reactions *int `json:"reactions,omitempty"`
}

type CancelNominationRequest struct {
	NominatorID int64 `json:"nominator_id"`
}

type OpenElectionRequest struct {
	OpenerID   int64 `json:"opener_id"`
	Hours      int   `json:"hours,omitempty"`
	BallotSize int   `json:"ballot_size,omitempty"`
}

type VoteEntry struct {
	BookID int64   `json:"book_id"`
	Weight float64 `json:"weight"`
}

type CastVoteRequest struct {
	ElectionID int64       `json:"election_id"`
	VoterID    int64       `json:"voter_id"`
	Entries    []VoteEntry `json:"entries"`
	Member     bool        `json:"is_member"`
}

type CloseElectionRequest struct {
	ClosedBy *int64 `json:"closed_by,omitempty"`
}

type CreatePredictionRequest struct {
	PredictorID int64    `json:"predictor_id"`
	Text        string   `json:"text"`
	Odds        *float64 `json:"odds,omitempty"`
	DueDate     string   `json:"due_date"` // YYYY-MM-DD
}

// Response types

type OpenElectionResponse struct {
	ID            int64       `json:"id"`
	Ballot        []int64     `json:"ballot"`
	BallotDetails []Candidate `json:"ballot_details"`
	OpenedAt      time.Time   `json:"opened_at"`
	ClosesAt      time.Time   `json:"closes_at"`
}

type CloseElectionResponse struct {
	ID       int64        `json:"id"`
	ClosedAt time.Time    `json:"closed_at"`
	Winner   *BookResult  `json:"winner"`
	Results  []BookResult `json:"results"`
	Message  string       `json:"message,omitempty"`
}

type BallotPreviewResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type CreatePredictionResponse struct {
	ID        int64 `json:"id"`
	MessageID int64 `json:"message_id"`
}

// ErrorResponse is the uniform error body: a single human-readable detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Domain types

type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Summary     *string   `json:"summary"`
	ISBN        *string   `json:"isbn"`
	Length      *int      `json:"length"`
	CreatedAt   time.Time `json:"created_at"`
}

type Nomination struct {
	ID          int64     `json:"id"`
	BookID      int64     `json:"book_id"`
	NominatorID int64     `json:"nominator_id"`
	MessageID   int64     `json:"message_id"`
	Reactions   int       `json:"reactions"`
	CreatedAt   time.Time `json:"created_at"`
}

type Election struct {
	ID              int64      `json:"id"`
	OpenerID        int64      `json:"opener_id"`
	OpenedAt        time.Time  `json:"opened_at"`
	ClosesAt        time.Time  `json:"closes_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	ClosedBy        *int64     `json:"closed_by,omitempty"`
	Ballot          []int64    `json:"ballot"`
	BallotMessageID *int64     `json:"ballot_message_id,omitempty"`
	ReactionFrozen  bool       `json:"-"`
	WinnerID        *int64     `json:"winner_id,omitempty"`
}

type Vote struct {
	ElectionID int64   `json:"election_id"`
	VoterID    int64   `json:"voter_id"`
	BookID     int64   `json:"book_id"`
	Weight     float64 `json:"weight"`
}

// Candidate is one ballot-selection entry: a nominated book together with the
// signals that ranked it.
type Candidate struct {
	BookID           int64     `json:"book_id"`
	Title            string    `json:"title"`
	Reactions        int       `json:"reactions"`
	PreviousVotes    float64   `json:"previous_votes"`
	Score            float64   `json:"score"`
	PriorAppearances int       `json:"prior_appearances"`
	LastChance       bool      `json:"last_chance"`
	CreatedAt        time.Time `json:"-"`
}

// BookResult is one row of a tallied election: a ballot book and its summed
// vote weight.
type BookResult struct {
	BookID     int64   `json:"book_id"`
	Title      string  `json:"title"`
	TotalVotes float64 `json:"total_votes"`
}

type Prediction struct {
	ID          int64     `json:"id"`
	PredictorID int64     `json:"predictor_id"`
	Text        string    `json:"text"`
	Odds        *float64  `json:"odds"`
	DueDate     time.Time `json:"due_date"`
	MessageID   int64     `json:"message_id"`
	Reminded    bool      `json:"reminded"`
	CreatedAt   time.Time `json:"created_at"`
}
