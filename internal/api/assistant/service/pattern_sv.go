package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/pkg/matcher"
	"context"
)

func (s *assistantService) GetPatterns(ctx context.Context) assistant.PatternsResponse {
	collisions := s.matcher.Collisions()
	if collisions == nil {
		collisions = []matcher.Collision{}
	}
	return assistant.PatternsResponse{
		Patterns:   s.matcher.Table(),
		Collisions: collisions,
	}
}
