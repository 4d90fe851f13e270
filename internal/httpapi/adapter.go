package httpapi

import (
	"context"

	"chatd/internal/session"
	"chatd/pkg/types"
)

// ManagerService adapts a session.Manager to the Service interface.
type ManagerService struct {
	*session.Manager
}

func (s ManagerService) Chat(ctx context.Context, modelID string, turn types.ChatTurn) (ChatStream, error) {
	st, err := s.Manager.Chat(ctx, modelID, turn)
	if err != nil {
		return nil, err
	}
	return st, nil
}
