package pageagent

import (
	"context"
	"time"
)

type bounded struct {
	agent   Agent
	timeout time.Duration
}

// Bounded gives every Send on agent its own deadline. Agents that honour ctx
// report the expiry as ErrNoActiveTab.
func Bounded(agent Agent, timeout time.Duration) Agent {
	if timeout <= 0 {
		return agent
	}
	return &bounded{agent: agent, timeout: timeout}
}

func (b *bounded) Send(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.agent.Send(ctx, req)
}
