// Package rod implements the browser session using Chrome automation.
package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mwalter/cardcrawl"
)

// Ensure Session implements cardcrawl.Session at compile time.
var _ cardcrawl.Session = (*Session)(nil)

// defaultUserAgent is presented to sites that vary their markup for
// automation clients.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

// concealScript hides the automation marker some sites inspect before
// rendering their listing.
const concealScript = "Object.defineProperty(navigator, 'webdriver', {get: () => undefined})"

// Session drives a single Chrome page. It is the rendered view a Crawler
// mutates: one page target for the whole crawl, every pagination transition
// re-renders it in place.
//
// A Session is NOT safe for concurrent use. Run concurrent crawls on
// separate sessions.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
}

type config struct {
	headless  bool
	userAgent string
	width     int
	height    int
}

// Option configures a Session.
type Option func(*config)

// WithHeadless controls whether the browser runs headless. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(c *config) {
		c.headless = headless
	}
}

// WithUserAgent overrides the user agent presented to sites.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithWindowSize overrides the browser window size. Some listing layouts
// collapse their card markup below desktop widths.
func WithWindowSize(width, height int) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// NewSession launches a Chrome browser and opens a single blank page.
// Close must be called when the Session is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSession(opts ...Option) (*Session, error) {
	cfg := &config{
		headless:  true,
		userAgent: defaultUserAgent,
		width:     1920,
		height:    1200,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	lnchr := launcher.New().
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.width, cfg.height)).
		Set("user-agent", cfg.userAgent).
		Leakless(true).
		Headless(cfg.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	if _, err := page.EvalOnNewDocument(concealScript); err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return nil, fmt.Errorf("installing init script: %w", err)
	}

	return &Session{browser: browser, launcher: lnchr, page: page}, nil
}

// Navigate loads the URL in the session's page and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// Eval runs the script in the page and reports whether it evaluated to a
// truthy value. A script returning nothing reports false with a nil error.
func (s *Session) Eval(ctx context.Context, js string) (bool, error) {
	res, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// Elements returns handles to the elements currently matching the selector.
func (s *Session) Elements(ctx context.Context, selector string) ([]cardcrawl.Element, error) {
	els, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]cardcrawl.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out, nil
}

// HTML returns the rendered content of the current view.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Close releases browser resources.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// element adapts a rod element handle. Handles go stale when the page
// re-renders; methods surface that as errors for the caller's fallback
// chain.
type element struct {
	el *rod.Element
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	return e.el.Context(ctx).ScrollIntoView()
}

func (e *element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

// ForceClick dispatches the click from script, bypassing overlay
// interception and visibility checks.
func (e *element) ForceClick(ctx context.Context) error {
	_, err := e.el.Context(ctx).Eval("() => this.click()")
	return err
}
