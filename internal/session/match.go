package session

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"trucogauderio/internal/game/card"
	"trucogauderio/internal/game/player"
	"trucogauderio/internal/session/message"
)

// MatchTargetPoints encerra a partida no instante em que algum jogador
// alcança ou passa este total.
const MatchTargetPoints = 12

const tricksPerDeal = 3

// matchPhase é o estado explícito do motor da partida. O loop da
// distribuição despacha por fase em vez de usar breaks aninhados.
type matchPhase int

const (
	phaseAwaitingAction matchPhase = iota
	phaseTrucoChallenge
	phaseEnvidoChallenge
	phaseTrickResolved
	phaseDealResolved
	phaseMatchResolved
)

// trucoState acompanha a escalada do truco dentro de uma distribuição.
// Os flags marcam os níveis já cantados; o stake só sobe quando o nível
// é aceito.
type trucoState struct {
	stake         int
	trucoCalled   bool
	retrucoCalled bool
	vale4Called   bool
	lastRaiser    int
}

// envidoState acompanha a cadeia de envido. O envido resolve no máximo uma
// vez por distribuição.
type envidoState struct {
	envidoCalled      bool
	realEnvidoCalled  bool
	faltaEnvidoCalled bool
	resolved          bool
	agreedValue       int
	lastCaller        int
}

// handDealer é o que o motor precisa para distribuir cartas.
// *deck.Dealer implementa; os testes injetam mãos prontas.
type handDealer interface {
	DealHands() ([player.HandSize]card.Card, [player.HandSize]card.Card)
}

// Match é o motor de uma partida completa de truco entre os dois jogadores
// de uma sala. Roda inteiro na goroutine da sala: o estado daqui nunca é
// tocado por mais de uma goroutine.
type Match struct {
	roomID  int
	players [RoomCapacity]*PlayerSession
	dealer  handDealer

	phase      matchPhase
	dealOpener int // quem abre a distribuição; alterna a cada uma
	turn       int // de quem é a vez

	truco  trucoState
	envido envidoState

	trick        int // rodada atual da distribuição, 0-based
	trickOpener  int
	table        [RoomCapacity]*card.Card // carta na mesa nesta rodada, por jogador
	playedInDeal int
	trickWins    [RoomCapacity]int

	winner int
}

func NewMatch(roomID int, players [RoomCapacity]*PlayerSession, dealer handDealer) *Match {
	return &Match{
		roomID:  roomID,
		players: players,
		dealer:  dealer,
		winner:  -1,
	}
}

func (m *Match) other(i int) int {
	return 1 - i
}

// Run joga uma partida inteira: distribuições em sequência até alguém
// fechar os 12 pontos. Qualquer erro de conexão aborta tudo.
func (m *Match) Run() error {
	for _, ps := range m.players {
		ps.Player.StartMatch()
		message.SendText(ps, "A sala está completa! Partida valendo %d pontos. Boa sorte!\n", MatchTargetPoints)
	}
	m.dealOpener = 0

	for {
		if err := m.playDeal(); err != nil {
			return err
		}
		if m.phase == phaseMatchResolved {
			m.announceWinner()
			return nil
		}
		// Abre a próxima distribuição quem não abriu esta.
		m.dealOpener = m.other(m.dealOpener)
	}
}

// playDeal joga uma distribuição do começo ao fim, despachando pela fase.
func (m *Match) playDeal() error {
	m.resetDeal()
	m.deal()

	for {
		var err error
		switch m.phase {
		case phaseAwaitingAction:
			err = m.awaitAction()
		case phaseTrucoChallenge:
			err = m.resolveTrucoChallenge()
		case phaseEnvidoChallenge:
			err = m.resolveEnvidoChallenge()
		case phaseTrickResolved:
			m.resolveTrick()
		case phaseDealResolved, phaseMatchResolved:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// resetDeal zera todo o estado que vale por uma distribuição só.
func (m *Match) resetDeal() {
	m.truco = trucoState{stake: 1, lastRaiser: -1}
	m.envido = envidoState{lastCaller: -1}
	m.trick = 0
	m.trickOpener = m.dealOpener
	m.turn = m.dealOpener
	m.table = [RoomCapacity]*card.Card{}
	m.playedInDeal = 0
	m.trickWins = [RoomCapacity]int{}
	m.phase = phaseAwaitingAction
}

// deal distribui as mãos e avisa os jogadores. Envido e flor ficam fixados
// aqui, antes de qualquer carta sair.
func (m *Match) deal() {
	h1, h2 := m.dealer.DealHands()
	m.players[0].Player.StartDeal(h1)
	m.players[1].Player.StartDeal(h2)

	log.Printf("[Room %d] nova distribuição, abre o jogador %d (%s)", m.roomID, m.dealOpener, m.players[m.dealOpener].ID)

	for i, ps := range m.players {
		message.SendText(ps, "\n--- Nova distribuição ---\n")
		message.SendHand(ps, m.handText(i))
		if ps.Player.HasFlor {
			// Flor é só anunciada: a pontuação dela não existe nesta variante.
			message.SendText(ps, "Você tem FLOR! (três cartas do mesmo naipe)")
		}
		message.SendScoreboard(ps, m.scoreboardText(i))
	}
}

// awaitAction espera a ação de quem tem a vez: índice de carta, T ou E.
// Entrada inválida não consome a vez: só avisa e pede de novo.
func (m *Match) awaitAction() error {
	ps := m.players[m.turn]
	message.SendHand(ps, m.handText(m.turn))
	message.SendTable(ps, m.tableText(m.turn))
	message.SendYourTurn(ps, "Sua vez! Jogue uma carta (1-3)%s.", m.turnOptions())

	for {
		action, err := ps.Receive()
		if err != nil {
			return err
		}

		switch token := strings.ToUpper(strings.TrimSpace(action)); token {
		case "T":
			if m.truco.vale4Called {
				message.SendError(ps, "O truco já chegou no VALE QUATRO, não dá para aumentar.")
				message.SendYourTurn(ps, "Sua vez! Jogue uma carta (1-3)%s.", m.turnOptions())
				continue
			}
			m.phase = phaseTrucoChallenge
			return nil

		case "E":
			if !m.envidoOpen() {
				message.SendError(ps, "Envido só vale na primeira rodada, antes de sair qualquer carta.")
				message.SendYourTurn(ps, "Sua vez! Jogue uma carta (1-3)%s.", m.turnOptions())
				continue
			}
			m.phase = phaseEnvidoChallenge
			return nil

		default:
			if err := m.playCard(token); err != nil {
				message.SendYourTurn(ps, "Sua vez! Jogue uma carta (1-3)%s.", m.turnOptions())
				continue
			}
			return nil
		}
	}
}

// playCard interpreta o token como índice 1-based e joga a carta.
// Devolve erro para qualquer entrada que não vira uma jogada válida;
// o aviso ao jogador já foi enviado.
func (m *Match) playCard(token string) error {
	ps := m.players[m.turn]

	idx, err := strconv.Atoi(token)
	if err != nil {
		message.SendError(ps, "Comando não reconhecido: %q. Use 1-3, T, E, S ou N.", token)
		return err
	}

	c, err := ps.Player.Hand().Play(idx - 1)
	switch {
	case errors.Is(err, player.ErrIndexOutOfRange):
		message.SendError(ps, "Carta %d não existe: escolha de 1 a 3.", idx)
		return err
	case errors.Is(err, player.ErrCardAlreadyPlayed):
		message.SendError(ps, "A carta %d já foi jogada.", idx)
		return err
	case err != nil:
		message.SendError(ps, "Jogada inválida: %v", err)
		return err
	}

	m.table[m.turn] = &c
	m.playedInDeal++
	log.Printf("[Room %d] jogador %d (%s) jogou %s", m.roomID, m.turn, ps.ID, c.Key())

	for i, p := range m.players {
		message.SendTable(p, m.tableText(i))
	}

	if m.table[0] != nil && m.table[1] != nil {
		m.phase = phaseTrickResolved
	} else {
		m.turn = m.other(m.turn)
	}
	return nil
}

// resolveTrick compara as duas cartas da mesa e fecha a rodada.
func (m *Match) resolveTrick() {
	c0, c1 := *m.table[0], *m.table[1]

	switch card.Compare(c0, c1) {
	case card.Card1Wins:
		m.finishTrick(0, c0)
	case card.Card2Wins:
		m.finishTrick(1, c1)
	default:
		// Rodada empatada: ninguém leva, quem abriu segue abrindo.
		m.broadcastText("Rodada %d empatou (%s x %s)!", m.trick+1, c0, c1)
		m.turn = m.trickOpener
		m.afterTrick()
	}
}

func (m *Match) finishTrick(winner int, winning card.Card) {
	m.trickWins[winner]++
	m.trickOpener = winner
	m.turn = winner
	message.SendText(m.players[winner], "Você levou a rodada %d com %s!", m.trick+1, winning)
	message.SendText(m.players[m.other(winner)], "O adversário levou a rodada %d com %s.", m.trick+1, winning)
	m.afterTrick()
}

// afterTrick limpa a mesa e decide se a distribuição acabou.
func (m *Match) afterTrick() {
	m.table = [RoomCapacity]*card.Card{}
	m.trick++

	done := m.trickWins[0] == 2 || m.trickWins[1] == 2 || m.trick == tricksPerDeal
	if !done {
		m.phase = phaseAwaitingAction
		return
	}

	winner := m.dealOpener // empate total: leva quem abriu a distribuição
	switch {
	case m.trickWins[0] > m.trickWins[1]:
		winner = 0
	case m.trickWins[1] > m.trickWins[0]:
		winner = 1
	}

	message.SendText(m.players[winner], "Você ganhou a distribuição!")
	message.SendText(m.players[m.other(winner)], "O adversário ganhou a distribuição.")
	m.finishDeal(winner, m.truco.stake)
}

// finishDeal entrega os pontos da distribuição e decide se a partida acabou.
func (m *Match) finishDeal(winner, points int) {
	m.players[winner].Player.AddPoints(points)
	log.Printf("[Room %d] jogador %d (%s) ganhou a distribuição (%d ponto(s))",
		m.roomID, winner, m.players[winner].ID, points)
	m.broadcastScoreboard()

	if m.players[winner].Player.MatchPoints >= MatchTargetPoints {
		m.winner = winner
		m.phase = phaseMatchResolved
		return
	}
	m.phase = phaseDealResolved
}

// resolveTrucoChallenge conduz o desafio síncrono do truco. Quem tem a vez
// cantou; o adversário responde S (aceita), N (corre) ou T (aumenta). O
// turno original não muda: resolvido o desafio, a vez de quem cantou é
// jogada de novo.
func (m *Match) resolveTrucoChallenge() error {
	challenger := m.turn
	responder := m.other(challenger)

	// Quem corre entrega o valor anterior ao aumento.
	declineStake := m.truco.stake

	for {
		name, proposed := m.proposeNextTrucoLevel()
		canRaise := !m.truco.vale4Called
		log.Printf("[Room %d] jogador %d (%s) cantou %s", m.roomID, challenger, m.players[challenger].ID, name)
		message.SendText(m.players[challenger], "Você cantou %s! Esperando a resposta...", name)

		reply, err := m.awaitChallengeReply(responder, name, "T", canRaise)
		if err != nil {
			return err
		}

		switch reply {
		case "S":
			m.truco.stake = proposed
			m.truco.lastRaiser = challenger
			m.broadcastText("%s aceito! A distribuição agora vale %d ponto(s).", name, proposed)
			m.phase = phaseAwaitingAction
			return nil

		case "N":
			message.SendText(m.players[responder], "Você correu do %s.", name)
			message.SendText(m.players[challenger], "O adversário correu do %s!", name)
			m.finishDeal(challenger, declineStake)
			return nil

		case "T":
			// O desafiado aumenta: os papéis se invertem e o próximo
			// nível entra em jogo.
			declineStake = proposed
			challenger, responder = responder, challenger
		}
	}
}

// proposeNextTrucoLevel marca o próximo nível como cantado e devolve o
// nome e o valor proposto. O stake em si só muda no aceite.
func (m *Match) proposeNextTrucoLevel() (string, int) {
	switch {
	case !m.truco.trucoCalled:
		m.truco.trucoCalled = true
		return "TRUCO", 2
	case !m.truco.retrucoCalled:
		m.truco.retrucoCalled = true
		return "RETRUCO", 3
	default:
		m.truco.vale4Called = true
		return "VALE QUATRO", 4
	}
}

// resolveEnvidoChallenge conduz a cadeia do envido: ENVIDO -> REAL ENVIDO
// -> FALTA ENVIDO, com o mesmo protocolo S/N/E de resposta. No aceite os
// pontos pré-calculados das mãos se enfrentam; empate favorece quem abriu
// a distribuição. A distribuição continua depois, a não ser que o placar
// feche a partida.
func (m *Match) resolveEnvidoChallenge() error {
	challenger := m.turn
	responder := m.other(challenger)

	declineValue := 1 // recusar o primeiro canto vale 1 ponto
	proposed := 0

	for {
		var name string
		name, proposed = m.proposeNextEnvidoLevel(challenger, proposed)
		canRaise := !m.envido.faltaEnvidoCalled
		m.envido.lastCaller = challenger
		log.Printf("[Room %d] jogador %d (%s) cantou %s", m.roomID, challenger, m.players[challenger].ID, name)
		message.SendText(m.players[challenger], "Você cantou %s! Esperando a resposta...", name)

		reply, err := m.awaitChallengeReply(responder, name, "E", canRaise)
		if err != nil {
			return err
		}

		switch reply {
		case "S":
			m.envido.resolved = true
			m.envido.agreedValue = proposed
			m.scoreEnvidoShowdown(proposed)
			return nil

		case "N":
			m.envido.resolved = true
			message.SendText(m.players[responder], "Você não quis o %s.", name)
			message.SendText(m.players[challenger], "O adversário não quis o %s!", name)
			m.scoreEnvido(challenger, declineValue)
			return nil

		case "E":
			declineValue = proposed
			challenger, responder = responder, challenger
		}
	}
}

// proposeNextEnvidoLevel avança a cadeia e devolve o nome e o valor em
// disputa. O FALTA ENVIDO vale o que falta para o adversário de quem
// cantou fechar a partida.
func (m *Match) proposeNextEnvidoLevel(caller, current int) (string, int) {
	switch {
	case !m.envido.envidoCalled:
		m.envido.envidoCalled = true
		return "ENVIDO", 2
	case !m.envido.realEnvidoCalled:
		m.envido.realEnvidoCalled = true
		return "REAL ENVIDO", current + 3
	default:
		m.envido.faltaEnvidoCalled = true
		opponent := m.players[m.other(caller)]
		return "FALTA ENVIDO", MatchTargetPoints - opponent.Player.MatchPoints
	}
}

// scoreEnvidoShowdown compara os pontos de envido das duas mãos e premia o
// vencedor. Empate favorece quem abriu a distribuição.
func (m *Match) scoreEnvidoShowdown(points int) {
	e0 := m.players[0].Player.EnvidoPoints
	e1 := m.players[1].Player.EnvidoPoints

	winner := m.dealOpener
	switch {
	case e0 > e1:
		winner = 0
	case e1 > e0:
		winner = 1
	}

	for i, ps := range m.players {
		mine, theirs := e0, e1
		if i == 1 {
			mine, theirs = e1, e0
		}
		message.SendText(ps, "Envido: você %d x %d adversário.", mine, theirs)
	}
	message.SendText(m.players[winner], "Você ganhou o envido!")
	message.SendText(m.players[m.other(winner)], "O adversário ganhou o envido.")

	m.scoreEnvido(winner, points)
}

// scoreEnvido entrega os pontos do envido. Diferente do truco, a
// distribuição segue — a não ser que o placar feche a partida agora.
func (m *Match) scoreEnvido(winner, points int) {
	m.players[winner].Player.AddPoints(points)
	log.Printf("[Room %d] jogador %d (%s) levou %d ponto(s) de envido",
		m.roomID, winner, m.players[winner].ID, points)
	m.broadcastScoreboard()

	if m.players[winner].Player.MatchPoints >= MatchTargetPoints {
		m.winner = winner
		m.phase = phaseMatchResolved
		return
	}
	m.phase = phaseAwaitingAction
}

// awaitChallengeReply espera a resposta de um desafio: S, N ou o token de
// aumento (T para truco, E para envido). Qualquer outra coisa é rejeitada
// sem consumir a resposta.
func (m *Match) awaitChallengeReply(responder int, name, raiseToken string, canRaise bool) (string, error) {
	ps := m.players[responder]
	options := "S aceita, N corre"
	if canRaise {
		options += ", " + raiseToken + " aumenta"
	}
	message.SendText(ps, "O adversário cantou %s!", name)
	message.SendYourTurn(ps, "Responda o %s (%s).", name, options)

	for {
		action, err := ps.Receive()
		if err != nil {
			return "", err
		}

		token := strings.ToUpper(strings.TrimSpace(action))
		switch {
		case token == "S" || token == "N":
			return token, nil
		case token == raiseToken && canRaise:
			return token, nil
		case token == raiseToken:
			message.SendError(ps, "Não dá para aumentar mais: responda S ou N.")
		default:
			message.SendError(ps, "Resposta inválida: %q.", action)
		}
		message.SendYourTurn(ps, "Responda o %s (%s).", name, options)
	}
}

// announceWinner fecha a partida: placar final e anúncio para os dois.
func (m *Match) announceWinner() {
	log.Printf("[Room %d] jogador %d (%s) venceu a partida", m.roomID, m.winner, m.players[m.winner].ID)
	m.broadcastScoreboard()
	message.SendWinner(m.players[m.winner], "Você venceu a partida! Parabéns, tri campeão!")
	message.SendWinner(m.players[m.other(m.winner)], "Fim de jogo: o adversário venceu a partida.")
}

// envidoOpen diz se ainda dá para cantar envido: só na primeira rodada,
// antes de qualquer carta, e uma vez por distribuição.
func (m *Match) envidoOpen() bool {
	return m.trick == 0 && m.playedInDeal == 0 &&
		!m.envido.resolved && !m.envido.faltaEnvidoCalled
}

// turnOptions monta o sufixo do prompt com os cantos disponíveis.
func (m *Match) turnOptions() string {
	var opts []string
	if !m.truco.vale4Called {
		opts = append(opts, "T para truco")
	}
	if m.envidoOpen() {
		opts = append(opts, "E para envido")
	}
	if len(opts) == 0 {
		return ""
	}
	return ", " + strings.Join(opts, ", ")
}

// handText mostra a mão do jogador i com os índices de jogada.
func (m *Match) handText(i int) string {
	hand := m.players[i].Player.Hand()
	var sb strings.Builder
	sb.WriteString("Suas cartas:")
	for idx, c := range hand.Cards() {
		if hand.Played(idx) {
			sb.WriteString(fmt.Sprintf("  [%d] (jogada)", idx+1))
		} else {
			sb.WriteString(fmt.Sprintf("  [%d] %s", idx+1, c))
		}
	}
	return sb.String()
}

// tableText mostra a mesa da rodada atual do ponto de vista do jogador i.
func (m *Match) tableText(i int) string {
	render := func(c *card.Card) string {
		if c == nil {
			return "-"
		}
		return c.String()
	}
	return fmt.Sprintf("Mesa (rodada %d): você: %s | adversário: %s",
		m.trick+1, render(m.table[i]), render(m.table[m.other(i)]))
}

// scoreboardText mostra o placar do ponto de vista do jogador i.
func (m *Match) scoreboardText(i int) string {
	return fmt.Sprintf("Placar: você %d x %d adversário (distribuição valendo %d)",
		m.players[i].Player.MatchPoints,
		m.players[m.other(i)].Player.MatchPoints,
		m.truco.stake)
}

func (m *Match) broadcastScoreboard() {
	for i, ps := range m.players {
		message.SendScoreboard(ps, m.scoreboardText(i))
	}
}

func (m *Match) broadcastText(format string, args ...any) {
	for _, ps := range m.players {
		message.SendText(ps, format, args...)
	}
}
