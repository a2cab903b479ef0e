package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/ryuvi/carchat/chat/catalog"
)

func resultColumns() []table.Column {
	return []table.Column{
		{Title: "Marca", Width: 14},
		{Title: "Modelo", Width: 16},
		{Title: "Ano", Width: 5},
		{Title: "Preço", Width: 13},
		{Title: "Cor", Width: 9},
		{Title: "Combustível", Width: 11},
		{Title: "Transmissão", Width: 12},
		{Title: "KM", Width: 10},
		{Title: "Motor", Width: 6},
		{Title: "Portas", Width: 6},
	}
}

func resultRows(cars []catalog.Car) []table.Row {
	rows := make([]table.Row, 0, len(cars))
	for _, car := range cars {
		rows = append(rows, table.Row{
			car.Marca,
			car.Modelo,
			strconv.Itoa(car.Ano),
			formatPreco(car.Preco),
			car.Cor,
			car.Combustivel,
			car.Transmissao,
			formatKM(car.Quilometragem),
			fmt.Sprintf("%.1fL", car.Motor),
			strconv.Itoa(car.QttPortas),
		})
	}
	return rows
}

// formatPreco renders a pt-BR currency value: R$ 99.999,99.
func formatPreco(v float64) string {
	return "R$ " + groupThousands(fmt.Sprintf("%.2f", v), ",")
}

// formatKM renders an odometer reading: 99.999 km.
func formatKM(km int) string {
	return groupThousands(strconv.Itoa(km), "") + " km"
}

// groupThousands converts a "1234567.89"-style literal into pt-BR notation:
// "." as the thousands separator and decimalSep before the fraction.
func groupThousands(raw, decimalSep string) string {
	intPart := raw
	fracPart := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart, fracPart = raw[:i], raw[i+1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteString(decimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}
