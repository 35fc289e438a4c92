package card

import "fmt"

// Suit é um dos quatro naipes do baralho espanhol.
type Suit string

const (
	Espadas Suit = "Espadas"
	Paus    Suit = "Paus"
	Ouros   Suit = "Ouros"
	Copas   Suit = "Copas"
)

// Suits lista os naipes na ordem usada para montar o baralho.
var Suits = [4]Suit{Espadas, Paus, Ouros, Copas}

// Card é uma carta imutável do baralho de truco. Rank usa a numeração do
// baralho espanhol: 1 a 7 e 10 (valete), 11 (dama), 12 (rei).
// Não existem 8s e 9s.
type Card struct {
	Rank int
	Suit Suit
}

func rankLetter(rank int) string {
	switch rank {
	case 1:
		return "A"
	case 10:
		return "J"
	case 11:
		return "Q"
	case 12:
		return "K"
	}
	return fmt.Sprintf("%d", rank)
}

// Key retorna a forma curta da carta, ex: "AE", "7O", "KP".
func (c Card) Key() string {
	return rankLetter(c.Rank) + string(c.Suit[0])
}

func (c Card) String() string {
	return fmt.Sprintf("%s de %s", rankLetter(c.Rank), c.Suit)
}
