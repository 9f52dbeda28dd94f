package engine

import (
	"fmt"
	"net/url"
)

// Target identifies a pre-authenticated org. The access token comes from an
// external authentication provider; OrgForge never acquires credentials.
type Target struct {
	// InstanceURL is the org's base URL, e.g. "https://acme.my.example.com".
	InstanceURL string `json:"instance_url" validate:"required,url"`

	// AccessToken is the session id injected via the front-door URL.
	AccessToken string `json:"-" validate:"required"`
}

// Host returns the instance host, or the raw URL when it does not parse.
// Used anywhere the org must be identified without credential material.
func (t Target) Host() string {
	u, err := url.Parse(t.InstanceURL)
	if err != nil || u.Host == "" {
		return t.InstanceURL
	}
	return u.Host
}

// Kind enumerates the configuration operation categories. The set is closed:
// dispatch is a single exhaustive switch, so adding a category is a
// compile-time-checked enumeration change.
type Kind string

const (
	KindSessionSettings Kind = "session_settings"
	KindSharingSettings Kind = "sharing_settings"
	KindActivityCapture Kind = "activity_capture"
	KindOmniChannel     Kind = "omni_channel"
	KindFlowActivation  Kind = "flow_activation"
	KindOrgWideEmail    Kind = "org_wide_email"
)

// SessionSettingsOptions is a partial update of the session security
// surface. A nil field leaves the current org value unchanged.
type SessionSettingsOptions struct {
	// SessionTimeout is the session timeout in minutes.
	SessionTimeout *int `json:"session_timeout,omitempty"`

	// LockSessionsToIP locks sessions to the originating IP address.
	LockSessionsToIP *bool `json:"lock_sessions_to_ip,omitempty"`

	// ForceLogoutOnTimeout forces logout when the session times out.
	ForceLogoutOnTimeout *bool `json:"force_logout_on_timeout,omitempty"`
}

// SharingRuleOptions updates one object's organization-wide defaults on the
// sharing surface. Nil fields are left unchanged.
type SharingRuleOptions struct {
	// Object is the displayed object name whose row is edited.
	Object string `json:"object"`

	// InternalAccess is the default internal access level.
	InternalAccess *string `json:"internal_access,omitempty"`

	// ExternalAccess is the default external access level.
	ExternalAccess *string `json:"external_access,omitempty"`

	// GrantAccessUsingHierarchies controls the hierarchy checkbox.
	GrantAccessUsingHierarchies *bool `json:"grant_access_using_hierarchies,omitempty"`
}

// ActivityCaptureOptions is a partial update of the activity capture
// surface.
type ActivityCaptureOptions struct {
	Enabled    *bool `json:"enabled,omitempty"`
	SyncEmails *bool `json:"sync_emails,omitempty"`
	SyncEvents *bool `json:"sync_events,omitempty"`
}

// OmniChannelOptions is a partial update of the omni-channel surface.
type OmniChannelOptions struct {
	Enabled            *bool `json:"enabled,omitempty"`
	SkillsBasedRouting *bool `json:"skills_based_routing,omitempty"`
}

// FlowOptions activates or deactivates one flow by API name.
type FlowOptions struct {
	FlowAPIName string `json:"flow_api_name"`
	Activate    bool   `json:"activate"`
}

// OrgWideEmailOptions registers one org-wide email address.
type OrgWideEmailOptions struct {
	DisplayName      string `json:"display_name"`
	Address          string `json:"address"`
	AllowAllProfiles *bool  `json:"allow_all_profiles,omitempty"`
}

// Operation is a closed tagged variant: Kind selects which options field is
// set, and exactly one is.
type Operation struct {
	Kind Kind `json:"kind"`

	SessionSettings *SessionSettingsOptions `json:"session_settings,omitempty"`
	Sharing         *SharingRuleOptions     `json:"sharing,omitempty"`
	ActivityCapture *ActivityCaptureOptions `json:"activity_capture,omitempty"`
	OmniChannel     *OmniChannelOptions     `json:"omni_channel,omitempty"`
	Flow            *FlowOptions            `json:"flow,omitempty"`
	OrgWideEmail    *OrgWideEmailOptions    `json:"org_wide_email,omitempty"`
}

// Label returns the human-readable tag recorded in operation results.
func (op Operation) Label() string {
	switch op.Kind {
	case KindSessionSettings:
		return "Session Settings"
	case KindSharingSettings:
		return fmt.Sprintf("Sharing: %s", op.Sharing.Object)
	case KindActivityCapture:
		return "Activity Capture"
	case KindOmniChannel:
		return "Omni-Channel"
	case KindFlowActivation:
		return fmt.Sprintf("Flow: %s", op.Flow.FlowAPIName)
	case KindOrgWideEmail:
		return fmt.Sprintf("Org-Wide Email: %s", op.OrgWideEmail.Address)
	default:
		return string(op.Kind)
	}
}

// Batch is an ordered configuration document. Sections are optional; an
// absent section is skipped without affecting the order of present ones.
type Batch struct {
	SessionSettings *SessionSettingsOptions  `json:"session_settings,omitempty"`
	SharingSettings []SharingRuleOptions     `json:"sharing_settings,omitempty"`
	ActivityCapture *ActivityCaptureOptions  `json:"activity_capture,omitempty"`
	OmniChannel     *OmniChannelOptions      `json:"omni_channel,omitempty"`
	Flows           []FlowOptions            `json:"flows,omitempty"`
	OrgWideEmails   []OrgWideEmailOptions    `json:"org_wide_emails,omitempty"`
}

// Operations flattens the batch into execution order. The category order is
// fixed regardless of document layout; within a category, document order is
// preserved.
func (b *Batch) Operations() []Operation {
	ops := make([]Operation, 0, b.Len())
	if b.SessionSettings != nil {
		ops = append(ops, Operation{Kind: KindSessionSettings, SessionSettings: b.SessionSettings})
	}
	for i := range b.SharingSettings {
		ops = append(ops, Operation{Kind: KindSharingSettings, Sharing: &b.SharingSettings[i]})
	}
	if b.ActivityCapture != nil {
		ops = append(ops, Operation{Kind: KindActivityCapture, ActivityCapture: b.ActivityCapture})
	}
	if b.OmniChannel != nil {
		ops = append(ops, Operation{Kind: KindOmniChannel, OmniChannel: b.OmniChannel})
	}
	for i := range b.Flows {
		ops = append(ops, Operation{Kind: KindFlowActivation, Flow: &b.Flows[i]})
	}
	for i := range b.OrgWideEmails {
		ops = append(ops, Operation{Kind: KindOrgWideEmail, OrgWideEmail: &b.OrgWideEmails[i]})
	}
	return ops
}

// Len returns the total operation count across all sections.
func (b *Batch) Len() int {
	n := len(b.SharingSettings) + len(b.Flows) + len(b.OrgWideEmails)
	if b.SessionSettings != nil {
		n++
	}
	if b.ActivityCapture != nil {
		n++
	}
	if b.OmniChannel != nil {
		n++
	}
	return n
}
