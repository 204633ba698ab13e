package models

// Choice is a parsed vote choice. Only the two literal tokens parse;
// matching is exact, so "Yes" and "YES" are rejected.
type Choice string

const (
	ChoiceYes Choice = "yes"
	ChoiceNo  Choice = "no"
)

// ParseChoice parses the wire form of a vote choice.
func ParseChoice(s string) (Choice, bool) {
	switch s {
	case string(ChoiceYes):
		return ChoiceYes, true
	case string(ChoiceNo):
		return ChoiceNo, true
	default:
		return "", false
	}
}

// Response attribute actions
const (
	ActionInstantiate = "instantiate"
	ActionCreatePoll  = "create_poll"
	ActionVote        = "vote"
)

// Message types

type InstantiateMsg struct {
	AdminAddress string `json:"admin_address"`
}

type CreatePollMsg struct {
	Question string `json:"question"`
}

type VoteMsg struct {
	Question string `json:"question"`
	Choice   string `json:"choice"`
}

// ExecuteMsg is a tagged union. Exactly one branch is set per message;
// the wire form is {"create_poll":{...}} or {"vote":{...}}.
type ExecuteMsg struct {
	CreatePoll *CreatePollMsg `json:"create_poll,omitempty"`
	Vote       *VoteMsg       `json:"vote,omitempty"`
}

type GetPollMsg struct {
	Question string `json:"question"`
}

type GetConfigMsg struct{}

// QueryMsg is a tagged union. Exactly one branch is set per message;
// the wire form is {"get_poll":{...}} or {"get_config":{}}.
type QueryMsg struct {
	GetPoll   *GetPollMsg   `json:"get_poll,omitempty"`
	GetConfig *GetConfigMsg `json:"get_config,omitempty"`
}

// Response types

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Response struct {
	Attributes []Attribute `json:"attributes"`
}

// GetPollResponse carries the poll if it exists. Poll is null when the
// question has never been registered; that is a successful lookup, not
// an error.
type GetPollResponse struct {
	Poll *Poll `json:"poll"`
}

// Domain types

type Config struct {
	AdminAddress string `json:"admin_address"`
}

type Poll struct {
	Question string `json:"question"`
	YesVotes uint64 `json:"yes_votes"`
	NoVotes  uint64 `json:"no_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewResponse builds a Response carrying a single action attribute.
func NewResponse(action string) Response {
	return Response{Attributes: []Attribute{{Key: "action", Value: action}}}
}
