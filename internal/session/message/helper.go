package message

import (
	"fmt"

	"trucogauderio/internal/network"
)

// MessageSender é qualquer destino que pode receber uma mensagem.
// Desacopla este pacote de implementações concretas como PlayerSession.
// A entrega não pode entrar em pânico nem bloquear por causa de uma
// conexão que caiu: quem implementa decide descartar.
type MessageSender interface {
	SendMessage(msg network.Message)
}

// SendText envia um aviso em texto livre.
func SendText(sender MessageSender, format string, args ...any) {
	sender.SendMessage(network.NewTextMessage(fmt.Sprintf(format, args...)))
}

// SendError envia um aviso de erro de jogada. No fio é um MsgText comum;
// o prefixo é só convenção de apresentação.
func SendError(sender MessageSender, format string, args ...any) {
	sender.SendMessage(network.NewTextMessage("ERRO: " + fmt.Sprintf(format, args...)))
}

// SendHand envia o estado da mão do jogador.
func SendHand(sender MessageSender, text string) {
	sender.SendMessage(network.NewHandMessage(text))
}

// SendTable envia o estado da mesa.
func SendTable(sender MessageSender, text string) {
	sender.SendMessage(network.NewTableMessage(text))
}

// SendScoreboard envia o placar.
func SendScoreboard(sender MessageSender, text string) {
	sender.SendMessage(network.NewScoreboardMessage(text))
}

// SendYourTurn avisa que é a vez do jogador.
func SendYourTurn(sender MessageSender, format string, args ...any) {
	sender.SendMessage(network.NewYourTurnMessage(fmt.Sprintf(format, args...)))
}

// SendWinner anuncia o resultado final da partida.
func SendWinner(sender MessageSender, text string) {
	sender.SendMessage(network.NewWinnerMessage(text))
}

// SendRoomJoin confirma a entrada em uma sala.
func SendRoomJoin(sender MessageSender, format string, args ...any) {
	sender.SendMessage(network.NewRoomJoinMessage(fmt.Sprintf(format, args...)))
}
