// Package browser is a page agent backed by a Playwright-controlled Chromium.
package browser

import (
	"VaniAssistant/pkg/pageagent"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

const (
	maxContentLength = 5000
	defaultTimeout   = 10000
)

var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".content",
	".post",
	".article",
	".story",
}

type Options struct {
	Headless bool
	// Install downloads the driver and browsers before starting.
	Install bool
	// Timeout for page operations, in milliseconds.
	Timeout float64
}

// Driver answers page agent requests against its own browser context. One
// page at a time is active; tab requests move between the context's pages.
type Driver struct {
	log *logrus.Logger

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
}

var _ pageagent.Agent = (*Driver)(nil)

func Start(log *logrus.Logger, opts Options) (*Driver, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if opts.Install {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext()
	if err != nil {
		browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	bctx.SetDefaultTimeout(timeout)

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Driver{
		log:     log,
		pw:      pw,
		browser: browser,
		bctx:    bctx,
		page:    page,
	}, nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_ = d.bctx.Close()
	_ = d.browser.Close()
	return d.pw.Stop()
}

// Send runs req on the active page. Playwright calls are not cancellable, so
// the call runs behind a Future and ctx only bounds the wait.
func (d *Driver) Send(ctx context.Context, req pageagent.Request) (*pageagent.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", pageagent.ErrNoActiveTab, err)
	}

	future := pageagent.Go(func() (*pageagent.Response, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.handle(req)
	})

	resp, err := future.Await(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", pageagent.ErrNoActiveTab, err)
	}
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"kind":  req.Kind(),
			"error": err.Error(),
		}).Warn("Browser request failed")
	}
	return resp, err
}

func (d *Driver) handle(req pageagent.Request) (*pageagent.Response, error) {
	if r, ok := req.(pageagent.OpenTab); ok {
		return d.openTab(r.URL)
	}

	if d.page == nil || d.page.IsClosed() {
		return nil, pageagent.ErrNoActiveTab
	}

	switch r := req.(type) {
	case pageagent.CloseTab:
		return d.closeTab()
	case pageagent.SwitchTab:
		return d.switchTab(r.Offset)
	case pageagent.Navigate:
		return d.navigate(r.Direction)
	case pageagent.ScrollPage:
		_, err := d.page.Evaluate(scrollScript, []interface{}{string(r.Direction), r.Amount})
		return done(err)
	case pageagent.HighlightText:
		v, err := d.page.Evaluate(highlightScript, r.Text)
		if err != nil {
			return nil, err
		}
		return &pageagent.Response{Success: asInt(v) > 0}, nil
	case pageagent.ClickElement:
		v, err := d.page.Evaluate(clickScript, r.Element)
		if err != nil {
			return nil, err
		}
		return &pageagent.Response{Success: asBool(v)}, nil
	case pageagent.SelectInput:
		v, err := d.page.Evaluate(selectInputScript, r.Position)
		if err != nil {
			return nil, err
		}
		return &pageagent.Response{Success: asBool(v)}, nil
	case pageagent.PauseMedia:
		_, err := d.page.Evaluate(pauseScript)
		return done(err)
	case pageagent.ToggleMute:
		v, err := d.page.Evaluate(muteScript)
		if err != nil {
			return nil, err
		}
		return &pageagent.Response{Success: true, Muted: asBool(v)}, nil
	case pageagent.ReadSelectedText:
		v, err := d.page.Evaluate(selectionScript)
		if err != nil {
			return nil, err
		}
		return &pageagent.Response{Success: true, Content: asString(v)}, nil
	case pageagent.GetPageContent:
		content, err := d.content()
		if err != nil {
			return nil, err
		}
		return &pageagent.Response{Success: true, Content: content}, nil
	case pageagent.ReadPageContent:
		content, err := d.content()
		if err != nil {
			return nil, err
		}
		_, err = d.page.Evaluate(speakScript, []interface{}{content, 1.0, 1.0, 1.0, ""})
		return &pageagent.Response{Success: err == nil, Content: content}, err
	case pageagent.Speak:
		_, err := d.page.Evaluate(speakScript, []interface{}{r.Text, r.Rate, r.Pitch, r.Volume, r.Lang})
		return done(err)
	default:
		return nil, fmt.Errorf("%w: %s", pageagent.ErrUnknownKind, req.Kind())
	}
}

func (d *Driver) openTab(url string) (*pageagent.Response, error) {
	page, err := d.bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	d.page = page

	if url != "" {
		if _, err := page.Goto(url); err != nil {
			return nil, fmt.Errorf("navigation failed: %w", err)
		}
	}

	d.log.WithField("url", url).Debug("Tab opened")
	return &pageagent.Response{Success: true}, nil
}

func (d *Driver) closeTab() (*pageagent.Response, error) {
	if err := d.page.Close(); err != nil {
		return nil, err
	}

	d.page = nil
	if pages := d.bctx.Pages(); len(pages) > 0 {
		d.page = pages[len(pages)-1]
		_ = d.page.BringToFront()
	}
	return &pageagent.Response{Success: true}, nil
}

func (d *Driver) switchTab(offset int) (*pageagent.Response, error) {
	pages := d.bctx.Pages()
	if len(pages) == 0 {
		return nil, pageagent.ErrNoActiveTab
	}

	current := 0
	for i, p := range pages {
		if p == d.page {
			current = i
			break
		}
	}

	d.page = pages[wrapIndex(current+offset, len(pages))]
	if err := d.page.BringToFront(); err != nil {
		return nil, err
	}
	return &pageagent.Response{Success: true}, nil
}

func (d *Driver) navigate(direction pageagent.NavDirection) (*pageagent.Response, error) {
	var err error
	switch direction {
	case pageagent.NavBack:
		_, err = d.page.GoBack()
	case pageagent.NavForward:
		_, err = d.page.GoForward()
	case pageagent.NavReload:
		_, err = d.page.Reload()
	default:
		err = fmt.Errorf("unknown navigation direction %q", direction)
	}
	return done(err)
}

func (d *Driver) content() (string, error) {
	v, err := d.page.Evaluate(contentScript, contentSelectors)
	if err != nil {
		return "", err
	}
	return CleanContent(asString(v), maxContentLength), nil
}

// CleanContent collapses whitespace and keeps at most max runes.
func CleanContent(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max])
	}
	return s
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

func done(err error) (*pageagent.Response, error) {
	if err != nil {
		return nil, err
	}
	return &pageagent.Response{Success: true}, nil
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
