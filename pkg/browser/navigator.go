package browser

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/orgforge/orgforge/pkg/engine"
)

// setupPrefix is the modern administrative URL prefix.
const setupPrefix = "/lightning/setup/"

// setupFrameSelector matches the embedded iframe classic setup surfaces
// render their content in. Modern surfaces render inline.
const setupFrameSelector = "iframe[name='setup'], iframe[title='Setup'], div.setupcontent iframe"

// loadingIndicatorSelector matches the busy indicators shown while a setup
// surface is still rendering.
const loadingIndicatorSelector = ".slds-spinner, .loadingIndicator, #auraLoadingBox"

// contentMarkerSelector matches elements present once a setup surface has
// rendered its main content.
const contentMarkerSelector = ".setupcontent, .slds-page-header, div[role='main']"

// setupURL synthesizes the full URL for a setup destination. An absolute URL
// or a path already carrying the setup prefix is used verbatim.
func setupURL(origin, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.Contains(path, setupPrefix) {
		return origin + path
	}
	return origin + setupPrefix + strings.Trim(path, "/") + "/home"
}

// NavigateToSetup opens an administrative surface, waits for it to settle,
// and resolves the content frame when the surface renders one.
func (a *Actor) NavigateToSetup(ctx context.Context, path string) error {
	target := setupURL(a.origin, path)
	a.logger.Debug().Str("url", target).Msg("navigating to setup page")

	a.frame = nil
	page := a.page.Context(ctx)
	if err := page.Timeout(a.opts.NavigationTimeout).Navigate(target); err != nil {
		return engine.NewInteractionTimeoutError("failed to open setup page "+target, err)
	}

	a.waitSettled(page)
	a.frame = a.resolveFrame(page)
	return nil
}

// loadWait is one advisory post-navigation wait. Each is bounded, and
// exceeding the bound is tolerated rather than failed, since heavily
// asynchronous setup pages keep background requests open long after the page
// is usable.
type loadWait struct {
	name string
	run  func(page *rod.Page)
}

// loadWaits returns the advisory waits in the order they run: the load
// event, the busy indicator disappearing, network idle, and finally a
// recognized main-content marker.
func (a *Actor) loadWaits() []loadWait {
	return []loadWait{
		{"load event", func(p *rod.Page) {
			p.Timeout(a.opts.NavigationTimeout).MustWaitLoad()
		}},
		{"loading indicator", func(p *rod.Page) {
			// A surface may never show one; the short element wait covers
			// that, and the longer invisibility wait covers a slow render.
			el := p.Timeout(2 * time.Second).MustElement(loadingIndicatorSelector)
			el.Timeout(a.opts.NavigationTimeout).MustWaitInvisible()
		}},
		{"request idle", func(p *rod.Page) {
			p.Timeout(a.opts.NavigationTimeout).MustWaitRequestIdle()
		}},
		{"main content marker", func(p *rod.Page) {
			p.Timeout(5 * time.Second).MustElement(contentMarkerSelector)
		}},
	}
}

// waitSettled runs the advisory load heuristics. Timeouts here are soft.
func (a *Actor) waitSettled(page *rod.Page) {
	for _, w := range a.loadWaits() {
		if err := rod.Try(func() { w.run(page) }); err != nil {
			a.softTimeout(w.name, err)
		}
	}
}

// resolveFrame returns the content frame when the surface renders one.
// Classic surfaces embed their controls in an iframe and element queries
// must run inside it; a surface without a frame is queried at page level.
func (a *Actor) resolveFrame(page *rod.Page) *rod.Page {
	var frame *rod.Page
	err := rod.Try(func() {
		frame = page.Timeout(2 * time.Second).MustElement(setupFrameSelector).MustFrame()
	})
	if err != nil {
		return nil
	}
	a.logger.Debug().Msg("setup content frame detected")
	return frame
}

func (a *Actor) softTimeout(what string, err error) {
	soft := engine.NewNavigationTimeoutError(what+" wait exceeded its bound", err)
	a.logger.Debug().Err(soft).Msg("tolerating load heuristic timeout")
}
