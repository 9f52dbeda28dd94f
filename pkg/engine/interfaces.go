package engine

import "context"

// Connector establishes an authenticated browser session against a target
// org. pkg/browser provides the rod-backed implementation.
type Connector interface {
	// Connect launches an isolated browser, performs front-door session
	// injection, and verifies a post-login marker. It returns an
	// AuthenticationFailed error when no usable session results.
	Connect(ctx context.Context, target Target) (Session, error)
}

// Session owns one live browser instance and its page context. Exactly one
// Session exists per orchestrator run; it is never shared across runs.
type Session interface {
	// Actor returns the capability surface for driving setup pages.
	Actor() Actor

	// Disconnect releases the browser. It is idempotent: closing an
	// already-closed or never-opened session is a no-op.
	Disconnect(ctx context.Context) error
}

// Actor is the capability surface the per-kind protocols drive. It combines
// setup navigation with the primitive, idempotent UI interactions, keeping
// orchestration logic independent of concrete query syntax.
type Actor interface {
	// NavigateToSetup opens an administrative surface. A path already
	// carrying the modern URL prefix is used verbatim; otherwise the
	// setup URL is synthesized. Load completion is advisory: heuristic
	// waits are bounded and their timeouts swallowed.
	NavigateToSetup(ctx context.Context, path string) error

	// ClickButtonByLabel clicks any clickable control whose visible text
	// matches label. ElementNotFound if none appears in time.
	ClickButtonByLabel(ctx context.Context, label string) error

	// SetInputValue waits for the control, clears it, writes value.
	SetInputValue(ctx context.Context, selector, value string) error

	// SetCheckboxState toggles the control only when its current checked
	// state differs from desired.
	SetCheckboxState(ctx context.Context, selector string, desired bool) error

	// SelectDropdownOption sets a select control's value.
	SelectDropdownOption(ctx context.Context, selector, value string) error

	// WaitForToast waits for a notification element and returns its text.
	// With a non-empty expected substring, text not containing it is an
	// UnexpectedToastMessage error.
	WaitForToast(ctx context.Context, expected string) (string, error)

	// ConfirmDialog waits for a modal and clicks its confirm or cancel
	// control.
	ConfirmDialog(ctx context.Context, confirm bool) error
}
