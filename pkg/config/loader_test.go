package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orgforge/orgforge/pkg/engine"
)

const validDocument = `
continueOnError: true
sessionSettings:
  sessionTimeout: 30
  lockSessionsToIP: true
sharingSettings:
  - object: Account
    internalAccess: Private
  - object: Case
    grantAccessUsingHierarchies: true
activityCapture:
  enabled: true
  syncEmails: true
omniChannel:
  enabled: true
flows:
  - flowApiName: Lead_Routing
    activate: true
  - flowApiName: Old_Router
    activate: false
orgWideEmails:
  - displayName: Acme Support
    address: support@acme.example
    allowAllProfiles: true
`

func TestParseValidDocument(t *testing.T) {
	doc, err := Parse([]byte(validDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !doc.ContinueOnError {
		t.Error("continueOnError not decoded")
	}
	if doc.SessionSettings == nil || doc.SessionSettings.SessionTimeout == nil || *doc.SessionSettings.SessionTimeout != 30 {
		t.Error("session settings not decoded")
	}
	if len(doc.SharingSettings) != 2 || doc.SharingSettings[0].Object != "Account" {
		t.Errorf("sharing settings = %+v", doc.SharingSettings)
	}
	if len(doc.Flows) != 2 || doc.Flows[1].Activate {
		t.Errorf("flows = %+v", doc.Flows)
	}

	batch := doc.ToBatch()
	if batch.Len() != 8 {
		t.Errorf("batch.Len() = %d, want 8", batch.Len())
	}

	// Flattening preserves document order within each category.
	ops := batch.Operations()
	wantLabels := []string{
		"Session Settings",
		"Sharing: Account",
		"Sharing: Case",
		"Activity Capture",
		"Omni-Channel",
		"Flow: Lead_Routing",
		"Flow: Old_Router",
		"Org-Wide Email: support@acme.example",
	}
	if len(ops) != len(wantLabels) {
		t.Fatalf("operations = %d, want %d", len(ops), len(wantLabels))
	}
	for i, want := range wantLabels {
		if got := ops[i].Label(); got != want {
			t.Errorf("operation[%d] = %s, want %s", i, got, want)
		}
	}
}

func TestParseEinsteinActivityCaptureKey(t *testing.T) {
	doc, err := Parse([]byte("einsteinActivityCapture:\n  enabled: true\n  syncEmails: true\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	batch := doc.ToBatch()
	if batch.ActivityCapture == nil {
		t.Fatal("activity capture section not mapped")
	}
	if batch.ActivityCapture.Enabled == nil || !*batch.ActivityCapture.Enabled {
		t.Error("enabled not decoded")
	}
	if batch.ActivityCapture.SyncEmails == nil || !*batch.ActivityCapture.SyncEmails {
		t.Error("syncEmails not decoded")
	}
}

func TestParseRejectsBothActivityCaptureKeys(t *testing.T) {
	_, err := Parse([]byte("einsteinActivityCapture:\n  enabled: true\nactivityCapture:\n  enabled: true\n"))
	if !engine.IsConfigurationInvalid(err) {
		t.Fatalf("expected configuration error for duplicate section, got %v", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ToBatch().Len() != 0 {
		t.Error("empty input should produce an empty batch")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("sesionSettings:\n  sessionTimeout: 30\n"))
	if !engine.IsConfigurationInvalid(err) {
		t.Fatalf("expected configuration error for unknown field, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("flows:\n  - flowApiName: [unclosed\n"))
	if !engine.IsConfigurationInvalid(err) {
		t.Fatalf("expected configuration error for malformed YAML, got %v", err)
	}
}

func TestParseValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"sharing rule without object",
			"sharingSettings:\n  - internalAccess: Private\n",
		},
		{
			"flow without api name",
			"flows:\n  - activate: true\n",
		},
		{
			"org-wide email with invalid address",
			"orgWideEmails:\n  - displayName: Support\n    address: not-an-email\n",
		},
		{
			"org-wide email without display name",
			"orgWideEmails:\n  - address: support@acme.example\n",
		},
		{
			"session timeout below minimum",
			"sessionSettings:\n  sessionTimeout: 5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !engine.IsConfigurationInvalid(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(validDocument), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ToBatch().Len() != 8 {
		t.Errorf("batch.Len() = %d, want 8", doc.ToBatch().Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !engine.IsConfigurationInvalid(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
