package browser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/orgforge/orgforge/pkg/engine"
)

// clickableSelector matches anything a label-based click may target.
const clickableSelector = "button, a, input[type='button'], input[type='submit'], [role='button'], [role='menuitem']"

// toastSelector matches both the modern toast and the classic confirmation
// banner; save confirmations come through either depending on the surface.
const toastSelector = ".slds-notify__content, .toastMessage, .message.confirmM3"

// modalFooterSelector locates the action row of a confirmation modal.
const modalFooterSelector = ".slds-modal__footer, .uiModal .modal-footer"

// Actor implements engine.Actor over one rod page.
type Actor struct {
	page   *rod.Page
	origin string
	opts   Options
	logger zerolog.Logger

	// frame is the content frame of the current surface, set by
	// NavigateToSetup when the surface renders one. Nil for inline surfaces.
	frame *rod.Page
}

func newActor(page *rod.Page, origin string, opts Options, logger zerolog.Logger) *Actor {
	return &Actor{
		page:   page,
		origin: origin,
		opts:   opts,
		logger: logger,
	}
}

// root returns the element query root: the content frame detected on the
// last navigation when there is one, otherwise the page itself.
func (a *Actor) root() *rod.Page {
	if a.frame != nil {
		return a.frame
	}
	return a.page
}

// element waits for a selector within the interaction timeout.
func (a *Actor) element(ctx context.Context, selector string) (*rod.Element, error) {
	el, err := a.root().Context(ctx).Timeout(a.opts.InteractionTimeout).Element(selector)
	if err != nil {
		return nil, engine.NewElementNotFoundError(fmt.Sprintf("no element matches %q", selector), err)
	}
	return el, nil
}

// ClickButtonByLabel clicks the first clickable control whose visible text is
// exactly label.
func (a *Actor) ClickButtonByLabel(ctx context.Context, label string) error {
	pattern := "^\\s*" + regexp.QuoteMeta(label) + "\\s*$"
	el, err := a.root().Context(ctx).Timeout(a.opts.InteractionTimeout).
		ElementR(clickableSelector, pattern)
	if err != nil {
		return engine.NewElementNotFoundError(fmt.Sprintf("no clickable control labeled %q", label), err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return engine.NewInteractionTimeoutError(fmt.Sprintf("failed to click %q", label), err)
	}
	a.logger.Debug().Str("label", label).Msg("clicked")
	return nil
}

// SetInputValue clears the control and writes value.
func (a *Actor) SetInputValue(ctx context.Context, selector, value string) error {
	el, err := a.element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return engine.NewInteractionTimeoutError(fmt.Sprintf("failed to clear %q", selector), err)
	}
	if err := el.Input(value); err != nil {
		return engine.NewInteractionTimeoutError(fmt.Sprintf("failed to type into %q", selector), err)
	}
	return nil
}

// SetCheckboxState toggles the control only when its checked state differs
// from desired. Setting an already-correct checkbox touches nothing.
func (a *Actor) SetCheckboxState(ctx context.Context, selector string, desired bool) error {
	el, err := a.element(ctx, selector)
	if err != nil {
		return err
	}
	toggled, err := ensureCheckbox(rodCheckbox{el: el}, desired)
	if err != nil {
		return engine.NewInteractionTimeoutError(fmt.Sprintf("failed to set checkbox %q", selector), err)
	}
	a.logger.Debug().Str("selector", selector).Bool("desired", desired).Bool("toggled", toggled).Msg("checkbox set")
	return nil
}

// SelectDropdownOption sets a select control to the option with the given
// visible text.
func (a *Actor) SelectDropdownOption(ctx context.Context, selector, value string) error {
	el, err := a.element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.Select([]string{value}, true, rod.SelectorTypeText); err != nil {
		return engine.NewInteractionTimeoutError(
			fmt.Sprintf("failed to select %q in %q", value, selector), err)
	}
	return nil
}

// WaitForToast waits for a notification element and returns its text. With a
// non-empty expected substring, non-matching text is a hard failure.
func (a *Actor) WaitForToast(ctx context.Context, expected string) (string, error) {
	el, err := a.root().Context(ctx).Timeout(a.opts.ToastTimeout).Element(toastSelector)
	if err != nil {
		return "", engine.NewElementNotFoundError("no confirmation toast appeared", err)
	}
	text, err := el.Text()
	if err != nil {
		return "", engine.NewInteractionTimeoutError("failed to read toast text", err)
	}
	if !toastMatches(text, expected) {
		return text, engine.NewToastMismatchError(text, expected)
	}
	a.logger.Debug().Str("toast", text).Msg("toast confirmed")
	return text, nil
}

// ConfirmDialog waits for a modal footer and clicks its confirm or cancel
// control. Confirm is the rightmost action, cancel the leftmost.
func (a *Actor) ConfirmDialog(ctx context.Context, confirm bool) error {
	footer, err := a.element(ctx, modalFooterSelector)
	if err != nil {
		return err
	}
	buttons, err := footer.Elements("button")
	if err != nil || len(buttons) == 0 {
		return engine.NewElementNotFoundError("confirmation modal has no actions", err)
	}
	target := buttons[0]
	if confirm {
		target = buttons[len(buttons)-1]
	}
	if err := target.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return engine.NewInteractionTimeoutError("failed to click modal action", err)
	}
	return nil
}

// toastMatches reports whether toast text satisfies the expectation. A toast
// with no visible text never matches. An empty expectation accepts any
// non-empty toast; otherwise matching is a case-insensitive substring check.
func toastMatches(text, expected string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if expected == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(expected))
}

// checkbox abstracts the two-state control so the idempotence logic is
// testable without a page.
type checkbox interface {
	Checked() (bool, error)
	Toggle() error
}

// ensureCheckbox drives box to desired, toggling at most once. It reports
// whether a toggle happened.
func ensureCheckbox(box checkbox, desired bool) (bool, error) {
	current, err := box.Checked()
	if err != nil {
		return false, err
	}
	if current == desired {
		return false, nil
	}
	if err := box.Toggle(); err != nil {
		return false, err
	}
	return true, nil
}

// rodCheckbox adapts a rod element to the checkbox interface.
type rodCheckbox struct {
	el *rod.Element
}

func (c rodCheckbox) Checked() (bool, error) {
	prop, err := c.el.Property("checked")
	if err != nil {
		return false, err
	}
	return prop.Bool(), nil
}

func (c rodCheckbox) Toggle() error {
	return c.el.Click(proto.InputMouseButtonLeft, 1)
}
