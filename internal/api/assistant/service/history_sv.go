package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	contextPkg "VaniAssistant/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

// GetHistory returns up to limit entries, newest first. limit 0 returns the
// whole log.
func (s *assistantService) GetHistory(ctx context.Context, limit int) (*assistant.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read history")
		return nil, err
	}

	resp := &assistant.HistoryResponse{
		Entries:  make([]assistant.HistoryEntryResponse, 0, len(entries)),
		Capacity: s.history.Capacity(),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, assistant.HistoryEntryResponse{
			ID:        e.ID,
			Command:   e.Command,
			Response:  e.Response,
			Action:    e.Action,
			Success:   e.Success,
			Timestamp: assistant.FormatTime(e.Timestamp),
		})
	}

	return resp, nil
}

func (s *assistantService) ClearHistory(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.history.Clear(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to clear history")
		return err
	}

	s.log.WithField("request_id", requestID).Info("History cleared")
	return nil
}
