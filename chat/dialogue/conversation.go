package dialogue

import (
	"fmt"

	"github.com/ryuvi/carchat/chat/catalog"
)

// The four fixed price bucket suggestions shown once a model is chosen.
var priceSuggestions = []string{
	"Até 40.000",
	"Entre 40.000 e 60.000",
	"Entre 60.000 e 80.000",
	"Acima de 80.000",
}

const (
	maxBrandSuggestions = 5
	maxModelSuggestions = 5
	maxColorSuggestions = 5
	maxFuelSuggestions  = 3
)

// Conversation is one client's dialogue session: the current state plus the
// filters accumulated so far. It is owned by a single transport session and
// is not safe for concurrent use.
type Conversation struct {
	vocab    Vocabulary
	searcher Searcher

	state   State
	filters catalog.FilterSpec
}

// handlerFunc consumes one utterance in a given state and produces a reply,
// possibly advancing the state and recording a slot.
type handlerFunc func(c *Conversation, text string) Reply

// handlers is the state transition table: state × utterance → reply. Keeping
// it explicit makes each transition testable in isolation.
var handlers = map[State]handlerFunc{
	StateInit:                 (*Conversation).handleInit,
	StateAwaitingBrand:        (*Conversation).handleBrand,
	StateAwaitingModel:        (*Conversation).handleModel,
	StateAwaitingPrice:        (*Conversation).handlePrice,
	StateAwaitingColor:        (*Conversation).handleColor,
	StateAwaitingFuel:         (*Conversation).handleFuel,
	StateAwaitingTransmission: (*Conversation).handleTransmission,
}

// NewConversation creates a session at StateInit with empty filters.
func NewConversation(vocab Vocabulary, searcher Searcher) *Conversation {
	return &Conversation{
		vocab:    vocab,
		searcher: searcher,
		state:    StateInit,
	}
}

// State returns the current state, for logging and tests.
func (c *Conversation) State() State {
	return c.state
}

// Filters returns a copy of the accumulated filter spec.
func (c *Conversation) Filters() catalog.FilterSpec {
	return c.filters
}

// Process consumes one user utterance and returns the dialogue's reply. An
// unrecognized state yields a generic fallback without mutating anything.
func (c *Conversation) Process(text string) Reply {
	if handler, ok := handlers[c.state]; ok {
		return handler(c, text)
	}
	return Reply{Message: "Como posso te ajudar?"}
}

// Reset unconditionally clears the filters and returns to StateInit. Used
// for the out-of-band reset directive.
func (c *Conversation) Reset() {
	c.state = StateInit
	c.filters = catalog.FilterSpec{}
}

func (c *Conversation) handleInit(string) Reply {
	c.state = StateAwaitingBrand
	return Reply{
		Message:     "Que legal! Vou te ajudar a encontrar o carro ideal. Qual marca você prefere?",
		Suggestions: head(c.vocab.Brands(), maxBrandSuggestions),
	}
}

func (c *Conversation) handleBrand(text string) Reply {
	brand := extractBrand(text, c.vocab)
	if brand == "" {
		return Reply{
			Message:     "Não consegui identificar a marca. Poderia informar qual marca você prefere?",
			Suggestions: head(c.vocab.Brands(), maxBrandSuggestions),
		}
	}
	if !c.vocab.HasBrand(brand) {
		return Reply{
			Message:     fmt.Sprintf("Desculpe, não encontrei carros da marca %s. Alguma dessas marcas te interessa?", brand),
			Suggestions: head(c.vocab.Brands(), maxBrandSuggestions),
		}
	}

	c.filters.Marca = brand
	c.state = StateAwaitingModel
	return Reply{
		Message:     fmt.Sprintf("Ótima escolha! Temos ótimos modelos da %s. Qual você prefere?", brand),
		Suggestions: head(c.vocab.ModelsForBrand(brand), maxModelSuggestions),
	}
}

func (c *Conversation) handleModel(text string) Reply {
	brand := c.filters.Marca
	model := extractModel(text, brand, c.vocab)
	if model == "" {
		return Reply{
			Message:     "Não consegui identificar o modelo. Poderia informar qual modelo você deseja?",
			Suggestions: head(c.vocab.ModelsForBrand(brand), maxModelSuggestions),
		}
	}
	if !c.vocab.HasModel(model, brand) {
		return Reply{
			Message:     fmt.Sprintf("Desculpe, não encontrei o modelo %s para %s. Algum desses te interessa?", model, brand),
			Suggestions: head(c.vocab.ModelsForBrand(brand), maxModelSuggestions),
		}
	}

	c.filters.Modelo = model
	c.state = StateAwaitingPrice
	return Reply{
		Message:     fmt.Sprintf("Excelente escolha! O %s %s é um ótimo carro. Qual faixa de preço você está considerando?", brand, model),
		Suggestions: append([]string(nil), priceSuggestions...),
	}
}

func (c *Conversation) handlePrice(text string) Reply {
	priceRange, ok := ExtractPriceRange(text)
	if !ok {
		return Reply{
			Message:     "Não consegui entender a faixa de preço. Poderia informar novamente? (Ex: 'até 50.000' ou 'entre 30.000 e 60.000')",
			Suggestions: append([]string(nil), priceSuggestions...),
		}
	}

	c.filters.SetPreco(priceRange.Min, priceRange.Max)
	c.state = StateAwaitingColor
	return Reply{
		Message:     "Ótimo! Agora me diga: qual cor você prefere para o seu carro?",
		Suggestions: head(c.vocab.Colors(), maxColorSuggestions),
	}
}

func (c *Conversation) handleColor(text string) Reply {
	color := extractColor(text, c.vocab)
	if color == "" {
		return Reply{
			Message:     "Não consegui identificar a cor. Poderia informar qual cor você prefere?",
			Suggestions: head(c.vocab.Colors(), maxColorSuggestions),
		}
	}

	c.filters.Cor = color
	c.state = StateAwaitingFuel
	return Reply{
		Message:     fmt.Sprintf("Boa escolha! %s é uma ótima cor. Qual tipo de combustível você prefere?", color),
		Suggestions: head(c.vocab.Fuels(), maxFuelSuggestions),
	}
}

func (c *Conversation) handleFuel(text string) Reply {
	fuel := extractFuel(text, c.vocab)
	if fuel == "" {
		return Reply{
			Message:     "Não consegui identificar o combustível. Poderia informar qual tipo você prefere?",
			Suggestions: head(c.vocab.Fuels(), maxFuelSuggestions),
		}
	}

	c.filters.Combustivel = fuel
	c.state = StateAwaitingTransmission
	return Reply{
		Message:     "Entendido! Só mais uma informação: qual tipo de transmissão você deseja?",
		Suggestions: append([]string(nil), catalog.Transmissoes...),
	}
}

// handleTransmission fills the last slot and runs the search. On an empty
// result the session returns to StateInit with a reset-flagged retry
// invitation; on success it returns to StateAwaitingBrand so the user can
// start a new search without replaying the welcome text. Filters are
// cleared on both outcomes.
func (c *Conversation) handleTransmission(text string) Reply {
	transmission := extractTransmission(text, c.vocab)
	if transmission == "" {
		return Reply{
			Message:     "Não consegui identificar a transmissão. Poderia informar qual tipo você prefere?",
			Suggestions: append([]string(nil), catalog.Transmissoes...),
		}
	}

	c.filters.Transmissao = transmission
	results := c.searcher.Search(c.filters)
	c.filters = catalog.FilterSpec{}

	if len(results) == 0 {
		c.state = StateInit
		return Reply{
			Message: "Que pena. Infelizmente não consegui encontrar nenhum resultado com esses filtros. Você quer tentar novamente com diferentes informações?",
			Reset:   true,
		}
	}

	c.state = StateAwaitingBrand
	return Reply{
		Message:  fmt.Sprintf("Ótimo! Encontrei %d carros que combinam com você:", len(results)),
		Results:  results,
		Complete: true,
	}
}

func head(values []string, n int) []string {
	if len(values) > n {
		values = values[:n]
	}
	return append([]string(nil), values...)
}
