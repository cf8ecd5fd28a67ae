// Package notification produces the user-facing feedback for core operations
// (the toast sink) and delivers web push notifications to space watchers.
// Rendering is the front end's job; this package only owns the content.
package notification

import (
	"errors"
	"fmt"

	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/reservation"
)

// Level classifies a message for the toast sink.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is a human-readable notification keyed to a core operation.
type Message struct {
	Level       Level  `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// AddedToSelection confirms a space was added to the cart.
func AddedToSelection(space *model.Space) Message {
	return Message{
		Level:       LevelSuccess,
		Title:       "Espaço adicionado à seleção",
		Description: space.Name,
	}
}

// RemovedFromSelection confirms a space was removed from the cart.
func RemovedFromSelection(spaceID string) Message {
	return Message{
		Level:       LevelSuccess,
		Title:       "Espaço removido da seleção",
		Description: spaceID,
	}
}

// ReservationSubmitted confirms a reservation request was accepted.
func ReservationSubmitted(res *model.Reservation) Message {
	return Message{
		Level:       LevelSuccess,
		Title:       "Reserva realizada com sucesso!",
		Description: "Sua solicitação de reserva foi enviada para análise.",
	}
}

// ReservationCancelled confirms a cancellation.
func ReservationCancelled(res *model.Reservation) Message {
	return Message{
		Level:       LevelSuccess,
		Title:       "Reserva cancelada com sucesso!",
		Description: fmt.Sprintf("Pagamento: %s.", res.PaymentStatus.Label()),
	}
}

// ValidationFailed maps a reservation validation error to its toast message.
func ValidationFailed(err error) Message {
	var unavailable *reservation.UnavailableError
	switch {
	case errors.Is(err, reservation.ErrEmptySelection):
		return Message{
			Level:       LevelError,
			Title:       "Carrinho vazio",
			Description: "Você precisa selecionar pelo menos um espaço para fazer uma reserva.",
		}
	case errors.Is(err, reservation.ErrInvalidDateRange):
		return Message{
			Level:       LevelError,
			Title:       "Período inválido",
			Description: "O período mínimo de locação é de 1 mês (30 dias).",
		}
	case errors.Is(err, reservation.ErrIncompleteContact):
		return Message{
			Level:       LevelError,
			Title:       "Dados de contato inválidos",
			Description: "Verifique os campos destacados e tente novamente.",
		}
	case errors.As(err, &unavailable):
		return Message{
			Level:       LevelError,
			Title:       "Espaço indisponível",
			Description: fmt.Sprintf("Este espaço está com status %s.", unavailable.Status.Label()),
		}
	}
	return Message{
		Level:       LevelError,
		Title:       "Erro ao realizar reserva",
		Description: "Ocorreu um erro ao processar sua solicitação. Tente novamente.",
	}
}
