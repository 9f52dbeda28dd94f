package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/orgforge/orgforge/pkg/engine"
)

// frontDoorPath is the session injection endpoint. Opening it with a valid
// sid establishes an authenticated browser session without a login form.
const frontDoorPath = "secur/frontdoor.jsp"

// loginFailureMarkers are URL fragments that mean injection bounced back to
// an interactive login.
var loginFailureMarkers = []string{"/login", "?ec=", "/_ui/identity"}

// loginSuccessMarkers are URL fragments of a landed, authenticated UI.
var loginSuccessMarkers = []string{"/lightning", "/one/one.app", "/home", "/setup"}

// loginSuccessSelector matches chrome only an authenticated UI renders.
const loginSuccessSelector = "header.oneHeader, div.slds-global-header, #oneHeader, #setupComponent"

// Connector implements engine.Connector with a rod-driven browser.
type Connector struct {
	opts   Options
	logger zerolog.Logger
}

// NewConnector creates a connector with the given options. Zero-valued
// option fields fall back to defaults.
func NewConnector(opts Options, logger zerolog.Logger) *Connector {
	return &Connector{
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Connect launches an isolated browser, opens the front-door URL, and
// verifies the session landed on an authenticated surface.
func (c *Connector) Connect(ctx context.Context, target engine.Target) (engine.Session, error) {
	origin, err := instanceOrigin(target.InstanceURL)
	if err != nil {
		return nil, engine.NewAuthenticationError("instance URL is not a valid URL", err)
	}

	controlURL := c.opts.ControlURL
	var launch *launcher.Launcher
	if controlURL == "" {
		// Leakless is off so the helper binary is not required on hosts
		// that block extracting it.
		launch = launcher.New().Headless(c.opts.Headless).Leakless(false)
		controlURL, err = launch.Launch()
		if err != nil {
			return nil, engine.NewAuthenticationError("failed to launch browser", err)
		}
	}

	browser := rod.New().ControlURL(controlURL)
	if c.opts.SlowMo > 0 {
		browser = browser.SlowMotion(c.opts.SlowMo)
	}
	if err := browser.Connect(); err != nil {
		killLauncher(launch)
		return nil, engine.NewAuthenticationError("failed to connect to browser", err)
	}

	session := &Session{
		opts:    c.opts,
		logger:  c.logger,
		browser: browser,
		launch:  launch,
	}

	incognito, err := browser.Incognito()
	if err != nil {
		_ = session.Disconnect(ctx)
		return nil, engine.NewAuthenticationError("failed to create incognito context", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{URL: frontDoorURL(origin, target.AccessToken)})
	if err != nil {
		_ = session.Disconnect(ctx)
		return nil, engine.NewAuthenticationError("failed to open front-door page", err)
	}
	session.page = page

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             c.opts.ViewportWidth,
		Height:            c.opts.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		c.logger.Warn().Err(err).Msg("failed to set viewport")
	}

	if err := c.verifySession(ctx, page); err != nil {
		_ = session.Disconnect(ctx)
		return nil, err
	}

	session.actor = newActor(page, origin, c.opts, c.logger)
	c.logger.Debug().Str("instance", origin).Msg("browser session established")
	return session, nil
}

// verifySession polls until the page lands on an authenticated surface,
// recognized by its URL or by authenticated chrome in the DOM. Bouncing to a
// login form or exhausting the navigation timeout is an authentication
// failure.
func (c *Connector) verifySession(ctx context.Context, page *rod.Page) error {
	deadline := time.Now().Add(c.opts.NavigationTimeout)
	for {
		if err := ctx.Err(); err != nil {
			return engine.NewAuthenticationError("cancelled while verifying session", err)
		}

		if info, err := page.Info(); err == nil {
			switch classifyLanding(info.URL) {
			case landingFailed:
				return engine.NewAuthenticationError(
					fmt.Sprintf("session injection rejected, landed on %s", info.URL), nil)
			case landingSucceeded:
				return nil
			}
		}

		// The URL alone can be ambiguous mid-redirect; authenticated chrome
		// in the DOM settles it.
		if has, _, err := page.Has(loginSuccessSelector); err == nil && has {
			return nil
		}

		if time.Now().After(deadline) {
			return engine.NewAuthenticationError("no authenticated surface appeared after session injection", nil)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

// landing classifies the URL reached after front-door injection.
type landing int

const (
	landingUnknown landing = iota
	landingFailed
	landingSucceeded
)

// classifyLanding inspects a post-injection URL. A URL still on the front
// door is inconclusive; failure markers are checked before success markers.
func classifyLanding(current string) landing {
	if strings.Contains(current, frontDoorPath) {
		return landingUnknown
	}
	for _, marker := range loginFailureMarkers {
		if strings.Contains(current, marker) {
			return landingFailed
		}
	}
	for _, marker := range loginSuccessMarkers {
		if strings.Contains(current, marker) {
			return landingSucceeded
		}
	}
	return landingUnknown
}

// frontDoorURL builds the session injection URL for the given origin.
func frontDoorURL(origin, accessToken string) string {
	return fmt.Sprintf("%s/%s?sid=%s", origin, frontDoorPath, url.QueryEscape(accessToken))
}

// instanceOrigin normalizes an instance URL to scheme://host.
func instanceOrigin(instanceURL string) (string, error) {
	u, err := url.Parse(strings.TrimRight(instanceURL, "/"))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("instance URL %q has no scheme or host", instanceURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Session owns one live browser instance.
type Session struct {
	opts   Options
	logger zerolog.Logger

	browser *rod.Browser
	launch  *launcher.Launcher
	page    *rod.Page
	actor   *Actor

	closeOnce sync.Once
	closeErr  error
}

// Actor returns the capability surface for driving setup pages.
func (s *Session) Actor() engine.Actor {
	return s.actor
}

// Disconnect releases the browser. Safe to call more than once; only the
// first call does anything.
func (s *Session) Disconnect(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				s.logger.Debug().Err(err).Msg("failed to close page")
			}
		}
		if s.browser != nil {
			s.closeErr = s.browser.Close()
		}
		killLauncher(s.launch)
	})
	return s.closeErr
}

func killLauncher(launch *launcher.Launcher) {
	if launch == nil {
		return
	}
	launch.Kill()
}
