package commands

import (
	"VaniAssistant/pkg/browser"
	"VaniAssistant/pkg/log"
	websocketPkg "VaniAssistant/pkg/websocket"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultHubURL = "ws://localhost:3000/api/v1/assistant/agent"

type runOptions struct {
	hub      string
	token    string
	headless bool
	install  bool
	timeout  time.Duration
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the browser and serve the hub until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.token == "" {
				opts.token = os.Getenv("AGENT_TOKEN")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runAgent(ctx, log.NewLogger(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.hub, "hub", defaultHubURL, "websocket URL of the assistant hub")
	cmd.Flags().StringVar(&opts.token, "token", "", "agent token (defaults to $AGENT_TOKEN)")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "run the browser without a window")
	cmd.Flags().BoolVar(&opts.install, "install", false, "download the Playwright driver and browsers first")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "timeout for one page request")

	return cmd
}

func runAgent(ctx context.Context, logger *logrus.Logger, opts runOptions) error {
	driver, err := browser.Start(logger, browser.Options{
		Headless: opts.headless,
		Install:  opts.install,
		Timeout:  float64(opts.timeout.Milliseconds()),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := driver.Close(); err != nil {
			logger.Warnf("Failed to close browser: %v", err)
		}
	}()

	client := websocketPkg.NewAgentClient(opts.hub, driver, logger, websocketPkg.Options{
		Token:          opts.token,
		RequestTimeout: opts.timeout,
	})

	logger.WithFields(logrus.Fields{
		"hub":      opts.hub,
		"headless": opts.headless,
	}).Info("Page agent started")

	return client.Run(ctx)
}
