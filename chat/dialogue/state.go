// Package dialogue implements the slot-filling conversation that builds a
// vehicle search: the per-session state machine, the free-text extraction
// heuristics, and the replies (prompt, suggestions, results) sent back over
// the wire.
package dialogue

import "github.com/ryuvi/carchat/chat/catalog"

// State identifies a step of the conversation state machine. States form a
// strict linear chain; each one waits for a single slot.
type State string

const (
	StateInit                 State = "init"
	StateAwaitingBrand        State = "awaiting_brand"
	StateAwaitingModel        State = "awaiting_model"
	StateAwaitingPrice        State = "awaiting_price"
	StateAwaitingColor        State = "awaiting_color"
	StateAwaitingFuel         State = "awaiting_fuel"
	StateAwaitingTransmission State = "awaiting_transmission"
)

// Vocabulary supplies the known slot values, derived from the live record
// set. Injected so extraction is testable against synthetic vocabularies.
type Vocabulary interface {
	Brands() []string
	ModelsForBrand(brand string) []string
	Colors() []string
	Fuels() []string
	Transmissions() []string
	HasBrand(brand string) bool
	HasModel(model, brand string) bool
}

// Searcher executes the accumulated filter spec against the record set.
type Searcher interface {
	Search(spec catalog.FilterSpec) []catalog.Car
}

// Reply is the dialogue's answer to one user utterance.
type Reply struct {
	Message     string        `json:"message"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Results     []catalog.Car `json:"results,omitempty"`
	Complete    bool          `json:"complete,omitempty"`
	Reset       bool          `json:"reset,omitempty"`
}
