package card

// EnvidoValue é o valor da carta para o envido: figuras valem 0,
// as demais valem o próprio rank (ás = 1).
func EnvidoValue(c Card) int {
	if c.Rank >= 10 {
		return 0
	}
	return c.Rank
}

// HandEnvido calcula os pontos de envido de uma mão de 3 cartas.
// Com duas cartas do mesmo naipe, vale 20 mais as duas melhores do naipe;
// sem par de naipe, vale a carta mais alta sozinha.
func HandEnvido(hand [3]Card) int {
	bySuit := make(map[Suit][]int, 3)
	highest := 0
	for _, c := range hand {
		v := EnvidoValue(c)
		bySuit[c.Suit] = append(bySuit[c.Suit], v)
		if v > highest {
			highest = v
		}
	}

	best := 0
	for _, values := range bySuit {
		if len(values) < 2 {
			continue
		}
		pair := values[0] + values[1]
		if len(values) == 3 {
			// Flor: contam as duas melhores cartas do naipe.
			low := min(values[0], min(values[1], values[2]))
			pair = values[0] + values[1] + values[2] - low
		}
		if points := 20 + pair; points > best {
			best = points
		}
	}

	if best > 0 {
		return best
	}
	return highest
}

// HasFlor informa se as três cartas da mão são do mesmo naipe.
func HasFlor(hand [3]Card) bool {
	return hand[0].Suit == hand[1].Suit && hand[1].Suit == hand[2].Suit
}
