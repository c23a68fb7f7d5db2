package ports

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/adf"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
)

// TicketService reads issues from a ticketing system and comments on them.
type TicketService interface {
	GetTicket(ctx context.Context, issueKey string) (*models.TicketContext, error)
	AddComment(ctx context.Context, issueKey string, doc adf.Document) error
}
