package player

import (
	"errors"
	"testing"

	"trucogauderio/internal/game/card"
)

var testHand = [HandSize]card.Card{
	{Rank: 7, Suit: card.Ouros},
	{Rank: 5, Suit: card.Ouros},
	{Rank: 2, Suit: card.Paus},
}

func TestHandPlay(t *testing.T) {
	h := NewHand(testHand)

	c, err := h.Play(1)
	if err != nil {
		t.Fatalf("Play(1): %v", err)
	}
	if c != testHand[1] {
		t.Errorf("Play(1) devolveu %v, esperava %v", c, testHand[1])
	}
	if !h.Played(1) {
		t.Errorf("índice 1 deveria estar marcado como jogado")
	}
	if h.Remaining() != 2 {
		t.Errorf("Remaining() = %d, esperava 2", h.Remaining())
	}
}

func TestHandPlayTwice(t *testing.T) {
	h := NewHand(testHand)
	if _, err := h.Play(0); err != nil {
		t.Fatalf("Play(0): %v", err)
	}
	if _, err := h.Play(0); !errors.Is(err, ErrCardAlreadyPlayed) {
		t.Errorf("repetir a jogada devolveu %v, esperava ErrCardAlreadyPlayed", err)
	}
}

func TestHandPlayOutOfRange(t *testing.T) {
	h := NewHand(testHand)
	for _, i := range []int{-1, HandSize, 99} {
		if _, err := h.Play(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Play(%d) devolveu %v, esperava ErrIndexOutOfRange", i, err)
		}
	}
}

func TestStartDealDerivesEnvidoAndFlor(t *testing.T) {
	p := NewPlayer()
	p.StartDeal(testHand)

	if p.EnvidoPoints != 32 {
		t.Errorf("EnvidoPoints = %d, esperava 32", p.EnvidoPoints)
	}
	if p.HasFlor {
		t.Errorf("mão sem flor marcada com flor")
	}

	p.StartDeal([HandSize]card.Card{
		{Rank: 4, Suit: card.Copas},
		{Rank: 5, Suit: card.Copas},
		{Rank: 6, Suit: card.Copas},
	})
	if !p.HasFlor {
		t.Errorf("mão de naipe único deveria ter flor")
	}
}

func TestStartMatchResetsScore(t *testing.T) {
	p := NewPlayer()
	p.AddPoints(5)
	p.StartDeal(testHand)
	p.StartMatch()

	if p.MatchPoints != 0 || p.EnvidoPoints != 0 || p.Hand() != nil {
		t.Errorf("StartMatch não zerou o estado: %+v", p)
	}
}

func TestAddPointsIgnoresNonPositive(t *testing.T) {
	p := NewPlayer()
	p.AddPoints(3)
	p.AddPoints(0)
	p.AddPoints(-2)
	if p.MatchPoints != 3 {
		t.Errorf("MatchPoints = %d, esperava 3", p.MatchPoints)
	}
}
