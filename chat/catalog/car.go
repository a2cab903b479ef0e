// Package catalog owns the vehicle record set: the Car model, the fixed
// option lists, the Postgres-backed loader, and the in-memory vocabulary
// and filtering operations the dialogue runs against.
package catalog

import "math"

// Car is one vehicle record. Records are immutable once loaded; the set is
// read-only for the lifetime of a server process. JSON tags match the wire
// shape the client renders.
type Car struct {
	ID             string  `db:"id" json:"id"`
	Marca          string  `db:"marca" json:"marca"`
	Modelo         string  `db:"modelo" json:"modelo"`
	Ano            int     `db:"ano" json:"ano"`
	Categoria      string  `db:"categoria" json:"categoria"`
	Combustivel    string  `db:"combustivel" json:"combustivel"`
	Quilometragem  int     `db:"quilometragem" json:"quilometragem"`
	Transmissao    string  `db:"transmissao" json:"transmissao"`
	QttPortas      int     `db:"qtt_portas" json:"qtt_portas"`
	Motor          float64 `db:"motor" json:"motor"`
	ConsumoCidade  float64 `db:"consumo_cidade" json:"consumo_cidade"`
	ConsumoEstrada float64 `db:"consumo_estrada" json:"consumo_estrada"`
	Preco          float64 `db:"preco" json:"preco"`
	Cor            string  `db:"cor" json:"cor"`
}

// FilterSpec accumulates the slot values collected by the dialogue. A slot,
// once set, is never partially overwritten; it is only cleared by reset.
type FilterSpec struct {
	Marca       string
	Modelo      string
	Cor         string
	Combustivel string
	Transmissao string

	// Price bounds are inclusive and always set together. PrecoMax may be
	// +Inf for an unbounded upper range.
	PrecoMin float64
	PrecoMax float64
	HasPreco bool
}

// SetPreco records the price range slot.
func (f *FilterSpec) SetPreco(min, max float64) {
	f.PrecoMin = min
	f.PrecoMax = max
	f.HasPreco = true
}

// Unbounded reports whether the upper price bound is open.
func (f FilterSpec) Unbounded() bool {
	return f.HasPreco && math.IsInf(f.PrecoMax, 1)
}
