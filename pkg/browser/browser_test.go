package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/go-rod/rod"
)

func TestSetupURL(t *testing.T) {
	const origin = "https://acme.my.example.com"

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			"bare name is synthesized",
			"SessionSettings",
			origin + "/lightning/setup/SessionSettings/home",
		},
		{
			"surrounding slashes are trimmed",
			"/OmniChannelSettings/",
			origin + "/lightning/setup/OmniChannelSettings/home",
		},
		{
			"prefixed path is used verbatim",
			"/lightning/setup/Flows/home",
			origin + "/lightning/setup/Flows/home",
		},
		{
			"absolute URL is used verbatim",
			"https://other.example.com/lightning/setup/Flows/home",
			"https://other.example.com/lightning/setup/Flows/home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := setupURL(origin, tt.path); got != tt.want {
				t.Errorf("setupURL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFrontDoorURL(t *testing.T) {
	got := frontDoorURL("https://acme.my.example.com", "00Dxx!AR8+token/with=chars")
	want := "https://acme.my.example.com/secur/frontdoor.jsp?sid=00Dxx%21AR8%2Btoken%2Fwith%3Dchars"
	if got != want {
		t.Errorf("frontDoorURL() = %q, want %q", got, want)
	}
}

func TestInstanceOrigin(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare origin", "https://acme.my.example.com", "https://acme.my.example.com", false},
		{"trailing slash stripped", "https://acme.my.example.com/", "https://acme.my.example.com", false},
		{"path dropped", "https://acme.my.example.com/lightning/page", "https://acme.my.example.com", false},
		{"missing scheme", "acme.my.example.com", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := instanceOrigin(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("instanceOrigin(%q) expected an error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("instanceOrigin(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("instanceOrigin(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToastMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		want     bool
	}{
		{"empty expectation accepts any non-empty toast", "Insufficient privileges", "", true},
		{"substring match", "Your changes are saved.", "saved", true},
		{"matching is case-insensitive", "Settings Saved Successfully", "saved", true},
		{"mismatch", "An unexpected error occurred", "saved", false},
		{"empty toast text never matches", "", "", false},
		{"whitespace-only toast text never matches", "   \n", "saved", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toastMatches(tt.text, tt.expected); got != tt.want {
				t.Errorf("toastMatches(%q, %q) = %t, want %t", tt.text, tt.expected, got, tt.want)
			}
		})
	}
}

func TestActorRootPrefersFrame(t *testing.T) {
	page := &rod.Page{}
	actor := &Actor{page: page}
	if actor.root() != page {
		t.Error("without a content frame the page is the query root")
	}

	frame := &rod.Page{}
	actor.frame = frame
	if actor.root() != frame {
		t.Error("a detected content frame becomes the query root")
	}

	actor.frame = nil
	if actor.root() != page {
		t.Error("clearing the frame restores the page as the query root")
	}
}

func TestLoadWaitOrder(t *testing.T) {
	actor := &Actor{opts: DefaultOptions()}

	var names []string
	for _, w := range actor.loadWaits() {
		names = append(names, w.name)
	}

	want := []string{"load event", "loading indicator", "request idle", "main content marker"}
	if len(names) != len(want) {
		t.Fatalf("load waits = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("load wait[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestClassifyLanding(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want landing
	}{
		{"still on front door", "https://acme.my.example.com/secur/frontdoor.jsp?sid=x", landingUnknown},
		{"bounced to login form", "https://acme.my.example.com/login?un=user", landingFailed},
		{"error code redirect", "https://acme.my.example.com/?ec=302", landingFailed},
		{"identity challenge", "https://acme.my.example.com/_ui/identity/verification", landingFailed},
		{"lightning surface", "https://acme.my.example.com/lightning/page/home", landingSucceeded},
		{"one.app surface", "https://acme.my.example.com/one/one.app", landingSucceeded},
		{"unrecognized surface", "https://acme.my.example.com/somewhere", landingUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyLanding(tt.url); got != tt.want {
				t.Errorf("classifyLanding(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

type fakeCheckbox struct {
	checked    bool
	checkedErr error
	toggleErr  error
	toggles    int
}

func (c *fakeCheckbox) Checked() (bool, error) {
	return c.checked, c.checkedErr
}

func (c *fakeCheckbox) Toggle() error {
	if c.toggleErr != nil {
		return c.toggleErr
	}
	c.toggles++
	c.checked = !c.checked
	return nil
}

func TestEnsureCheckbox(t *testing.T) {
	tests := []struct {
		name        string
		current     bool
		desired     bool
		wantToggled bool
	}{
		{"unchecked to checked", false, true, true},
		{"checked to unchecked", true, false, true},
		{"already checked", true, true, false},
		{"already unchecked", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := &fakeCheckbox{checked: tt.current}
			toggled, err := ensureCheckbox(box, tt.desired)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if toggled != tt.wantToggled {
				t.Errorf("toggled = %t, want %t", toggled, tt.wantToggled)
			}
			if box.toggles > 1 {
				t.Errorf("toggles = %d, want at most 1", box.toggles)
			}
			if box.checked != tt.desired {
				t.Errorf("final state = %t, want %t", box.checked, tt.desired)
			}
		})
	}
}

func TestEnsureCheckboxErrors(t *testing.T) {
	readErr := errors.New("property read failed")
	if _, err := ensureCheckbox(&fakeCheckbox{checkedErr: readErr}, true); !errors.Is(err, readErr) {
		t.Errorf("read error not propagated, got %v", err)
	}

	toggleErr := errors.New("click failed")
	if _, err := ensureCheckbox(&fakeCheckbox{toggleErr: toggleErr}, true); !errors.Is(err, toggleErr) {
		t.Errorf("toggle error not propagated, got %v", err)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	filled := Options{}.withDefaults()
	def := DefaultOptions()
	if filled.NavigationTimeout != def.NavigationTimeout ||
		filled.InteractionTimeout != def.InteractionTimeout ||
		filled.ToastTimeout != def.ToastTimeout ||
		filled.ViewportWidth != def.ViewportWidth ||
		filled.ViewportHeight != def.ViewportHeight {
		t.Errorf("zero options not filled from defaults: %+v", filled)
	}

	custom := Options{
		NavigationTimeout: 5 * time.Second,
		ViewportWidth:     1280,
	}.withDefaults()
	if custom.NavigationTimeout != 5*time.Second {
		t.Errorf("explicit NavigationTimeout overwritten: %v", custom.NavigationTimeout)
	}
	if custom.ViewportWidth != 1280 {
		t.Errorf("explicit ViewportWidth overwritten: %d", custom.ViewportWidth)
	}
	if custom.InteractionTimeout != def.InteractionTimeout {
		t.Errorf("zero InteractionTimeout not defaulted: %v", custom.InteractionTimeout)
	}
}
