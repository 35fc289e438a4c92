package network

// MessageType identifica a variante de uma Message. O valor numérico é o
// mesmo que vai no fio, então a ordem das constantes faz parte do protocolo.
type MessageType int

const (
	// MsgText é um aviso em texto livre (erros de jogada, avisos da sala).
	MsgText MessageType = iota
	// MsgHand é o estado atual da mão do jogador.
	MsgHand
	// MsgTable é o estado atual da mesa (cartas jogadas na rodada).
	MsgTable
	// MsgScoreboard é o placar da partida.
	MsgScoreboard
	// MsgYourTurn avisa o jogador que é a vez dele e lista o que pode fazer.
	MsgYourTurn
	// MsgWinner anuncia o fim da partida.
	MsgWinner
	// MsgRoomJoin confirma a entrada em uma sala.
	MsgRoomJoin
	// MsgGameAction é a única mensagem no sentido cliente -> servidor:
	// o texto é o comando cru digitado pelo jogador.
	MsgGameAction
)

// Message é o envelope padrão para toda a comunicação.
// Ela contém um tipo para roteamento e um texto com os dados.
// A serialização (JSON dentro do frame WebSocket) é responsabilidade
// das goroutines de leitura/escrita do Client.
type Message struct {
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

// Um construtor por variante, para que o resto do código nunca monte
// uma Message na mão com o tipo errado.

func NewTextMessage(text string) Message {
	return Message{Type: MsgText, Text: text}
}

func NewHandMessage(text string) Message {
	return Message{Type: MsgHand, Text: text}
}

func NewTableMessage(text string) Message {
	return Message{Type: MsgTable, Text: text}
}

func NewScoreboardMessage(text string) Message {
	return Message{Type: MsgScoreboard, Text: text}
}

func NewYourTurnMessage(text string) Message {
	return Message{Type: MsgYourTurn, Text: text}
}

func NewWinnerMessage(text string) Message {
	return Message{Type: MsgWinner, Text: text}
}

func NewRoomJoinMessage(text string) Message {
	return Message{Type: MsgRoomJoin, Text: text}
}

func NewGameActionMessage(text string) Message {
	return Message{Type: MsgGameAction, Text: text}
}
