package card

// Constantes para representar o resultado da comparação de cartas.
const (
	Card1Wins = 1
	Card2Wins = -1
	Tie       = 0
)

// Strength devolve a força da carta na hierarquia do truco. Quanto maior,
// mais forte. As quatro manilhas vêm primeiro (1E, 1P, 7E, 7O); as demais
// cartas têm força por rank, então cartas de mesmo rank empatam entre si.
func Strength(c Card) int {
	switch {
	// Manilhas
	case c.Rank == 1 && c.Suit == Espadas:
		return 14
	case c.Rank == 1 && c.Suit == Paus:
		return 13
	case c.Rank == 7 && c.Suit == Espadas:
		return 12
	case c.Rank == 7 && c.Suit == Ouros:
		return 11
	// Cartas comuns
	case c.Rank == 3:
		return 10
	case c.Rank == 2:
		return 9
	case c.Rank == 1:
		return 8
	case c.Rank == 12:
		return 7
	case c.Rank == 11:
		return 6
	case c.Rank == 10:
		return 5
	case c.Rank == 7:
		return 4
	case c.Rank == 6:
		return 3
	case c.Rank == 5:
		return 2
	case c.Rank == 4:
		return 1
	}
	return 0
}

// Compare executa a comparação de uma rodada entre duas cartas.
// Retorna uma das constantes: Card1Wins, Card2Wins ou Tie.
func Compare(card1, card2 Card) int {
	s1, s2 := Strength(card1), Strength(card2)
	if s1 > s2 {
		return Card1Wins
	}
	if s2 > s1 {
		return Card2Wins
	}
	return Tie
}
