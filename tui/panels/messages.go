package panels

import (
	"github.com/shopspring/decimal"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/tutor"
)

// AllocateRequestMsg asks the application to move an allocation target.
// Panels never mutate the engine themselves.
type AllocateRequestMsg struct {
	ID     catalog.InstrumentID
	ETF    bool
	Target decimal.Decimal
}

// TutorAskMsg asks the application to forward a question to the tutor,
// carrying the conversation so far (without the new question).
type TutorAskMsg struct {
	Question string
	History  []tutor.Message
}

// TutorReplyMsg carries the tutor's answer (or failure) back to the panel.
type TutorReplyMsg struct {
	Answer string
	Err    error
}
