package dialogue

import (
	"math"
	"testing"

	"github.com/ryuvi/carchat/chat/catalog"
)

// fakeVocab is a synthetic vocabulary so extraction is tested without a
// database.
type fakeVocab struct {
	brands        []string
	models        map[string][]string
	colors        []string
	fuels         []string
	transmissions []string
}

func (v fakeVocab) Brands() []string                 { return v.brands }
func (v fakeVocab) ModelsForBrand(b string) []string { return v.models[b] }
func (v fakeVocab) Colors() []string                 { return v.colors }
func (v fakeVocab) Fuels() []string                  { return v.fuels }
func (v fakeVocab) Transmissions() []string          { return v.transmissions }
func (v fakeVocab) HasBrand(b string) bool           { return len(v.models[b]) > 0 }
func (v fakeVocab) HasModel(m, b string) bool {
	for _, known := range v.models[b] {
		if known == m {
			return true
		}
	}
	return false
}

type fakeSearcher struct {
	results  []catalog.Car
	lastSpec catalog.FilterSpec
	calls    int
}

func (s *fakeSearcher) Search(spec catalog.FilterSpec) []catalog.Car {
	s.calls++
	s.lastSpec = spec
	return s.results
}

func testVocab() fakeVocab {
	return fakeVocab{
		brands: []string{"Chevrolet", "Fiat", "Toyota"},
		models: map[string][]string{
			"Toyota": {"Corolla", "Etios", "Hilux"},
			"Fiat":   {"Uno"},
		},
		colors:        []string{"Preto", "Branco", "Prata"},
		fuels:         []string{"Flex", "Gasolina"},
		transmissions: []string{"Manual", "Automática"},
	}
}

func TestInitTransitionsToAwaitingBrand(t *testing.T) {
	conv := NewConversation(testVocab(), &fakeSearcher{})

	reply := conv.Process("oi")
	if conv.State() != StateAwaitingBrand {
		t.Fatalf("state = %s, want %s", conv.State(), StateAwaitingBrand)
	}
	if len(reply.Suggestions) != 3 {
		t.Fatalf("suggestions = %v, want the 3 known brands", reply.Suggestions)
	}
	if reply.Suggestions[0] != "Chevrolet" {
		t.Fatalf("suggestions not alphabetical: %v", reply.Suggestions)
	}
}

func TestBrandRecognitionAdvancesAndSuggestsModels(t *testing.T) {
	conv := NewConversation(testVocab(), &fakeSearcher{})
	conv.Process("oi")

	reply := conv.Process("Toyota")
	if conv.State() != StateAwaitingModel {
		t.Fatalf("state = %s, want %s", conv.State(), StateAwaitingModel)
	}
	if conv.Filters().Marca != "Toyota" {
		t.Fatalf("brand filter = %q, want Toyota", conv.Filters().Marca)
	}
	if len(reply.Suggestions) != 3 || reply.Suggestions[0] != "Corolla" {
		t.Fatalf("model suggestions = %v", reply.Suggestions)
	}
}

func TestUnrecognizedInputRepromptsWithoutMutating(t *testing.T) {
	conv := NewConversation(testVocab(), &fakeSearcher{})
	conv.Process("oi")

	first := conv.Process("uma marca que nao existe")
	second := conv.Process("outra coisa qualquer")

	if conv.State() != StateAwaitingBrand {
		t.Fatalf("state advanced on a miss: %s", conv.State())
	}
	if conv.Filters().Marca != "" {
		t.Fatalf("filters mutated on a miss: %+v", conv.Filters())
	}
	if len(first.Suggestions) != len(second.Suggestions) {
		t.Fatalf("re-prompt changed suggestions: %v vs %v", first.Suggestions, second.Suggestions)
	}
}

func TestSlotsAreNeverOverwrittenDuringDialogue(t *testing.T) {
	searcher := &fakeSearcher{results: []catalog.Car{{Marca: "Toyota"}}}
	conv := NewConversation(testVocab(), searcher)

	conv.Process("oi")
	conv.Process("Toyota")
	brandAfterBrand := conv.Filters().Marca

	conv.Process("Corolla")
	if conv.Filters().Marca != brandAfterBrand {
		t.Fatal("brand slot overwritten by model turn")
	}

	conv.Process("até 50.000")
	f := conv.Filters()
	if f.Marca != "Toyota" || f.Modelo != "Corolla" || !f.HasPreco {
		t.Fatalf("earlier slots lost: %+v", f)
	}

	conv.Process("preto")
	conv.Process("flex")
	f = conv.Filters()
	if f.Marca != "Toyota" || f.Modelo != "Corolla" || f.Cor != "Preto" || f.Combustivel != "Flex" {
		t.Fatalf("earlier slots lost: %+v", f)
	}
}

func TestFullDialogueWithMatchesCompletes(t *testing.T) {
	searcher := &fakeSearcher{results: []catalog.Car{{Marca: "Toyota", Modelo: "Corolla"}}}
	conv := NewConversation(testVocab(), searcher)

	conv.Process("oi")
	conv.Process("quero um Toyota")
	conv.Process("pode ser o corolla")
	conv.Process("entre 30.000 e 60.000")
	conv.Process("prefiro preto")
	conv.Process("flex")
	reply := conv.Process("automatica")

	if !reply.Complete {
		t.Fatal("reply.Complete = false, want true")
	}
	if reply.Reset {
		t.Fatal("reply.Reset = true on success")
	}
	if len(reply.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(reply.Results))
	}

	spec := searcher.lastSpec
	if spec.Marca != "Toyota" || spec.Modelo != "Corolla" || spec.Cor != "Preto" ||
		spec.Combustivel != "Flex" || spec.Transmissao != "Automática" {
		t.Fatalf("search spec = %+v", spec)
	}
	if !spec.HasPreco || spec.PrecoMin != 30000 || spec.PrecoMax != 60000 {
		t.Fatalf("price bounds = %v..%v", spec.PrecoMin, spec.PrecoMax)
	}

	// Success clears filters and returns to the brand question so a new
	// search starts without the welcome text.
	if conv.State() != StateAwaitingBrand {
		t.Fatalf("post-success state = %s, want %s", conv.State(), StateAwaitingBrand)
	}
	if conv.Filters() != (catalog.FilterSpec{}) {
		t.Fatalf("filters kept after success: %+v", conv.Filters())
	}
}

func TestFullDialogueWithoutMatchesResets(t *testing.T) {
	searcher := &fakeSearcher{} // no results
	conv := NewConversation(testVocab(), searcher)

	conv.Process("oi")
	conv.Process("Toyota")
	conv.Process("Etios")
	conv.Process("acima de 10 mil")
	conv.Process("branco")
	conv.Process("gasolina")
	reply := conv.Process("manual")

	if !reply.Reset {
		t.Fatal("reply.Reset = false, want true on empty result")
	}
	if reply.Complete || len(reply.Results) != 0 {
		t.Fatalf("unexpected success payload: %+v", reply)
	}
	if !math.IsInf(searcher.lastSpec.PrecoMax, 1) {
		t.Fatalf("price max = %v, want +Inf", searcher.lastSpec.PrecoMax)
	}

	// An empty result returns all the way to the initial state.
	if conv.State() != StateInit {
		t.Fatalf("post-empty state = %s, want %s", conv.State(), StateInit)
	}
	if conv.Filters() != (catalog.FilterSpec{}) {
		t.Fatalf("filters kept after empty result: %+v", conv.Filters())
	}
}

func TestResetMidDialogueClearsEverything(t *testing.T) {
	conv := NewConversation(testVocab(), &fakeSearcher{})

	conv.Process("oi")
	conv.Process("Toyota")
	conv.Process("Hilux")

	conv.Reset()
	if conv.State() != StateInit {
		t.Fatalf("state after reset = %s, want %s", conv.State(), StateInit)
	}
	if conv.Filters() != (catalog.FilterSpec{}) {
		t.Fatalf("filters after reset: %+v", conv.Filters())
	}
}

func TestUnknownStateFallsBack(t *testing.T) {
	conv := NewConversation(testVocab(), &fakeSearcher{})
	conv.state = State("unmapped")

	reply := conv.Process("qualquer coisa")
	if reply.Message == "" || reply.Complete || reply.Reset {
		t.Fatalf("fallback reply = %+v", reply)
	}
	if conv.State() != State("unmapped") {
		t.Fatalf("fallback mutated state to %s", conv.State())
	}
}
