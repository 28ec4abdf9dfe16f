package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"leadflow-engine/internal/domain"
)

type ChromeOptions struct {
	ExecPath    string
	UserDataDir string // reuse a profile that is already logged in
	Headless    bool
	Scrolls     int

	InvestorURL string
	ObituaryURL string

	InvestorSelector string
	ObituarySelector string

	Timeout time.Duration
	Limiter *HostLimiter
}

// Chrome drives one browser for the whole run and opens a tab per query.
type Chrome struct {
	opts ChromeOptions
	log  *zap.Logger

	browser     context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc
}

func NewChrome(ctx context.Context, opts ChromeOptions, log *zap.Logger) (*Chrome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	flags := []chromedp.ExecAllocatorOption{
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("headless", opts.Headless),
		chromedp.WindowSize(1366, 900),
	}
	if opts.ExecPath != "" {
		flags = append(flags, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.UserDataDir != "" {
		flags = append(flags, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:], flags...)...)
	browser, cancelTab := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser so a missing binary fails here.
	if err := chromedp.Run(browser); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &Chrome{
		opts:        opts,
		log:         log.Named("chrome"),
		browser:     browser,
		cancelAlloc: cancelAlloc,
		cancelTab:   cancelTab,
	}, nil
}

func (c *Chrome) Name() string { return "chrome" }

func (c *Chrome) Close() error {
	c.cancelTab()
	c.cancelAlloc()
	return nil
}

func (c *Chrome) Fetch(ctx context.Context, q Query) ([]domain.RawFragment, error) {
	tmpl, selector := c.opts.ObituaryURL, c.opts.ObituarySelector
	if q.Kind == KindInvestor {
		tmpl, selector = c.opts.InvestorURL, c.opts.InvestorSelector
	}
	if tmpl == "" {
		return nil, errors.New("no URL template for " + string(q.Kind))
	}
	target := ExpandURL(tmpl, q)

	if err := c.opts.Limiter.WaitURL(ctx, target); err != nil {
		return nil, err
	}

	tab, cancel := chromedp.NewContext(c.browser)
	defer cancel()
	if c.opts.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		tab, cancelTimeout = context.WithTimeout(tab, c.opts.Timeout)
		defer cancelTimeout()
	}
	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	c.log.Debug("navigate", zap.String("query", q.String()), zap.String("url", target))

	actions := []chromedp.Action{
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	var height int
	for range c.opts.Scrolls {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); document.body.scrollHeight`, &height),
			chromedp.Sleep(2*time.Second),
		)
	}
	var page string
	actions = append(actions, chromedp.OuterHTML("html", &page, chromedp.ByQuery))

	if err := chromedp.Run(tab, actions...); err != nil {
		return nil, fmt.Errorf("load %s: %w", target, err)
	}

	frags, err := SplitCards(page, selector, q, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	c.log.Debug("cards", zap.String("query", q.String()), zap.Int("count", len(frags)))
	return frags, nil
}
