package catalog

// Fixed option lists used to seed the cars table and to suggest the full
// transmission set during the dialogue.
var (
	Cores = []string{
		"Preto", "Branco", "Prata", "Cinza", "Vermelho",
		"Azul", "Verde", "Marrom", "Bege", "Amarelo",
	}

	Combustiveis = []string{"Flex", "Gasolina", "Etanol", "Diesel", "Híbrido", "Elétrico"}

	Transmissoes = []string{"Manual", "Automática", "Automatizada", "CVT"}
)
