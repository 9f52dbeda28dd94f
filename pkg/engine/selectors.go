package engine

import "fmt"

// Selectors names the DOM hooks the per-kind protocols drive. They track the
// target application's setup UI and are the expected thing to break when it
// changes; everything else in the engine is selector-agnostic.
type Selectors struct {
	// Session security surface.
	SessionTimeout       string
	LockSessionsToIP     string
	ForceLogoutOnTimeout string

	// Sharing surface. The *Fmt fields take the object name.
	SharingInternalFmt  string
	SharingExternalFmt  string
	SharingHierarchyFmt string

	// Activity capture surface.
	ActivityCaptureEnabled string
	ActivitySyncEmails     string
	ActivitySyncEvents     string

	// Omni-channel surface.
	OmniChannelEnabled string
	SkillsBasedRouting string

	// Flow listing surface.
	FlowSearchInput string

	// Org-wide email surface.
	EmailDisplayName      string
	EmailAddress          string
	EmailAllowAllProfiles string
}

// DefaultSelectors returns the selector set for the current setup UI.
func DefaultSelectors() Selectors {
	return Selectors{
		SessionTimeout:       "select[id$='SessionTimeout']",
		LockSessionsToIP:     "input[id$='LockSessionsToIp']",
		ForceLogoutOnTimeout: "input[id$='ForceLogout']",

		SharingInternalFmt:  "select[id$='%sDefaultInternal']",
		SharingExternalFmt:  "select[id$='%sDefaultExternal']",
		SharingHierarchyFmt: "input[id$='%sGrantHierarchy']",

		ActivityCaptureEnabled: "input[name='activityCaptureEnabled']",
		ActivitySyncEmails:     "input[name='syncEmails']",
		ActivitySyncEvents:     "input[name='syncEvents']",

		OmniChannelEnabled: "input[id$='OmniChannelEnabled']",
		SkillsBasedRouting: "input[id$='SkillsBasedRouting']",

		FlowSearchInput: "input[name='flow-search']",

		EmailDisplayName:      "input[id$='DisplayName']",
		EmailAddress:          "input[id$='Address']",
		EmailAllowAllProfiles: "input[id$='AllProfiles']",
	}
}

func (s Selectors) sharingInternal(object string) string {
	return fmt.Sprintf(s.SharingInternalFmt, object)
}

func (s Selectors) sharingExternal(object string) string {
	return fmt.Sprintf(s.SharingExternalFmt, object)
}

func (s Selectors) sharingHierarchy(object string) string {
	return fmt.Sprintf(s.SharingHierarchyFmt, object)
}
