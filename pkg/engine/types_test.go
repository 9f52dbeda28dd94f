package engine

import "testing"

func TestOperationLabel(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{"session settings", Operation{Kind: KindSessionSettings, SessionSettings: &SessionSettingsOptions{}}, "Session Settings"},
		{"sharing", Operation{Kind: KindSharingSettings, Sharing: &SharingRuleOptions{Object: "Account"}}, "Sharing: Account"},
		{"activity capture", Operation{Kind: KindActivityCapture, ActivityCapture: &ActivityCaptureOptions{}}, "Activity Capture"},
		{"omni-channel", Operation{Kind: KindOmniChannel, OmniChannel: &OmniChannelOptions{}}, "Omni-Channel"},
		{"flow", Operation{Kind: KindFlowActivation, Flow: &FlowOptions{FlowAPIName: "Lead_Routing"}}, "Flow: Lead_Routing"},
		{"org-wide email", Operation{Kind: KindOrgWideEmail, OrgWideEmail: &OrgWideEmailOptions{Address: "support@acme.example"}}, "Org-Wide Email: support@acme.example"},
		{"unknown kind falls back to the kind string", Operation{Kind: Kind("bogus")}, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBatchLenMatchesOperations(t *testing.T) {
	batch := &Batch{
		SessionSettings: &SessionSettingsOptions{},
		SharingSettings: []SharingRuleOptions{{Object: "Account"}, {Object: "Case"}},
		Flows:           []FlowOptions{{FlowAPIName: "A", Activate: true}},
	}
	if batch.Len() != len(batch.Operations()) {
		t.Errorf("Len() = %d, Operations() has %d", batch.Len(), len(batch.Operations()))
	}
	if batch.Len() != 4 {
		t.Errorf("Len() = %d, want 4", batch.Len())
	}
}

func TestTargetHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://acme.my.example.com", "acme.my.example.com"},
		{"https://acme.my.example.com/some/path", "acme.my.example.com"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		target := Target{InstanceURL: tt.in}
		if got := target.Host(); got != tt.want {
			t.Errorf("Host(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
