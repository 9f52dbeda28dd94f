package config

import "github.com/orgforge/orgforge/pkg/engine"

// Document is the YAML batch document. Sections are optional; fields inside
// a section are optional unless marked required, and omitting a field leaves
// the org's current value unchanged.
type Document struct {
	// ContinueOnError selects the failure policy: false aborts on the
	// first failed operation, true attempts every operation and collects
	// failures.
	ContinueOnError bool `yaml:"continueOnError"`

	SessionSettings *SessionSettings `yaml:"sessionSettings,omitempty"`
	SharingSettings []SharingRule    `yaml:"sharingSettings,omitempty" validate:"dive"`

	EinsteinActivityCapture *ActivityCapture `yaml:"einsteinActivityCapture,omitempty"`

	// ActivityCapture is an accepted shorthand for einsteinActivityCapture.
	// A document may carry one of the two keys, not both.
	ActivityCapture *ActivityCapture `yaml:"activityCapture,omitempty"`

	OmniChannel   *OmniChannel   `yaml:"omniChannel,omitempty"`
	Flows         []Flow         `yaml:"flows,omitempty" validate:"dive"`
	OrgWideEmails []OrgWideEmail `yaml:"orgWideEmails,omitempty" validate:"dive"`
}

// activityCapture returns the activity capture section under whichever key
// the document used.
func (d *Document) activityCapture() *ActivityCapture {
	if d.EinsteinActivityCapture != nil {
		return d.EinsteinActivityCapture
	}
	return d.ActivityCapture
}

// SessionSettings configures the session security surface.
type SessionSettings struct {
	SessionTimeout       *int  `yaml:"sessionTimeout,omitempty" validate:"omitempty,min=15"`
	LockSessionsToIP     *bool `yaml:"lockSessionsToIP,omitempty"`
	ForceLogoutOnTimeout *bool `yaml:"forceLogoutOnTimeout,omitempty"`
}

// SharingRule configures one object's organization-wide defaults.
type SharingRule struct {
	Object                      string  `yaml:"object" validate:"required"`
	InternalAccess              *string `yaml:"internalAccess,omitempty"`
	ExternalAccess              *string `yaml:"externalAccess,omitempty"`
	GrantAccessUsingHierarchies *bool   `yaml:"grantAccessUsingHierarchies,omitempty"`
}

// ActivityCapture configures the activity capture surface.
type ActivityCapture struct {
	Enabled    *bool `yaml:"enabled,omitempty"`
	SyncEmails *bool `yaml:"syncEmails,omitempty"`
	SyncEvents *bool `yaml:"syncEvents,omitempty"`
}

// OmniChannel configures the omni-channel surface.
type OmniChannel struct {
	Enabled            *bool `yaml:"enabled,omitempty"`
	SkillsBasedRouting *bool `yaml:"skillsBasedRouting,omitempty"`
}

// Flow activates or deactivates one flow by API name.
type Flow struct {
	FlowAPIName string `yaml:"flowApiName" validate:"required"`
	Activate    bool   `yaml:"activate"`
}

// OrgWideEmail registers one org-wide email address.
type OrgWideEmail struct {
	DisplayName      string `yaml:"displayName" validate:"required"`
	Address          string `yaml:"address" validate:"required,email"`
	AllowAllProfiles *bool  `yaml:"allowAllProfiles,omitempty"`
}

// ToBatch converts the document to the engine's batch representation.
// Within each category, document order is preserved.
func (d *Document) ToBatch() *engine.Batch {
	batch := &engine.Batch{}

	if d.SessionSettings != nil {
		batch.SessionSettings = &engine.SessionSettingsOptions{
			SessionTimeout:       d.SessionSettings.SessionTimeout,
			LockSessionsToIP:     d.SessionSettings.LockSessionsToIP,
			ForceLogoutOnTimeout: d.SessionSettings.ForceLogoutOnTimeout,
		}
	}
	for _, rule := range d.SharingSettings {
		batch.SharingSettings = append(batch.SharingSettings, engine.SharingRuleOptions{
			Object:                      rule.Object,
			InternalAccess:              rule.InternalAccess,
			ExternalAccess:              rule.ExternalAccess,
			GrantAccessUsingHierarchies: rule.GrantAccessUsingHierarchies,
		})
	}
	if capture := d.activityCapture(); capture != nil {
		batch.ActivityCapture = &engine.ActivityCaptureOptions{
			Enabled:    capture.Enabled,
			SyncEmails: capture.SyncEmails,
			SyncEvents: capture.SyncEvents,
		}
	}
	if d.OmniChannel != nil {
		batch.OmniChannel = &engine.OmniChannelOptions{
			Enabled:            d.OmniChannel.Enabled,
			SkillsBasedRouting: d.OmniChannel.SkillsBasedRouting,
		}
	}
	for _, flow := range d.Flows {
		batch.Flows = append(batch.Flows, engine.FlowOptions{
			FlowAPIName: flow.FlowAPIName,
			Activate:    flow.Activate,
		})
	}
	for _, email := range d.OrgWideEmails {
		batch.OrgWideEmails = append(batch.OrgWideEmails, engine.OrgWideEmailOptions{
			DisplayName:      email.DisplayName,
			Address:          email.Address,
			AllowAllProfiles: email.AllowAllProfiles,
		})
	}

	return batch
}
