package engine

import (
	"context"
	"fmt"
	"strconv"
)

// Setup destinations. Bare names are synthesized into full setup URLs by the
// navigator; a path already carrying the setup prefix is used verbatim.
const (
	pathSessionSettings = "SessionSettings"
	pathSecuritySharing = "SecuritySharing"
	pathActivityCapture = "EinsteinActivityCapture"
	pathOmniChannel     = "OmniChannelSettings"
	pathFlows           = "Flows"
	pathOrgWideEmails   = "OrgWideEmailAddresses"
)

// savedToast is the substring every save confirmation is expected to carry.
const savedToast = "saved"

// protocolRunner binds the per-kind UI protocols to one live Actor. Each
// protocol is a straight-line script: navigate, interact with only the fields
// the operation provides, save, confirm.
type protocolRunner struct {
	actor Actor
	sel   Selectors
}

// run dispatches op to its kind-specific protocol. The switch is exhaustive
// over the closed Kind set.
func (r *protocolRunner) run(ctx context.Context, op Operation) error {
	switch op.Kind {
	case KindSessionSettings:
		return r.applySessionSettings(ctx, op.SessionSettings)
	case KindSharingSettings:
		return r.applySharingRule(ctx, op.Sharing)
	case KindActivityCapture:
		return r.applyActivityCapture(ctx, op.ActivityCapture)
	case KindOmniChannel:
		return r.applyOmniChannel(ctx, op.OmniChannel)
	case KindFlowActivation:
		return r.applyFlowActivation(ctx, op.Flow)
	case KindOrgWideEmail:
		return r.applyOrgWideEmail(ctx, op.OrgWideEmail)
	default:
		return NewConfigurationError(fmt.Sprintf("unknown operation kind %q", op.Kind), nil)
	}
}

func (r *protocolRunner) applySessionSettings(ctx context.Context, opts *SessionSettingsOptions) error {
	if err := r.actor.NavigateToSetup(ctx, pathSessionSettings); err != nil {
		return err
	}
	if err := r.actor.ClickButtonByLabel(ctx, "Edit"); err != nil {
		return err
	}
	if opts.SessionTimeout != nil {
		value := strconv.Itoa(*opts.SessionTimeout)
		if err := r.actor.SelectDropdownOption(ctx, r.sel.SessionTimeout, value); err != nil {
			return err
		}
	}
	if opts.LockSessionsToIP != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.LockSessionsToIP, *opts.LockSessionsToIP); err != nil {
			return err
		}
	}
	if opts.ForceLogoutOnTimeout != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.ForceLogoutOnTimeout, *opts.ForceLogoutOnTimeout); err != nil {
			return err
		}
	}
	return r.saveAndConfirm(ctx)
}

func (r *protocolRunner) applySharingRule(ctx context.Context, opts *SharingRuleOptions) error {
	if err := r.actor.NavigateToSetup(ctx, pathSecuritySharing); err != nil {
		return err
	}
	if err := r.actor.ClickButtonByLabel(ctx, "Edit"); err != nil {
		return err
	}
	if opts.InternalAccess != nil {
		if err := r.actor.SelectDropdownOption(ctx, r.sel.sharingInternal(opts.Object), *opts.InternalAccess); err != nil {
			return err
		}
	}
	if opts.ExternalAccess != nil {
		if err := r.actor.SelectDropdownOption(ctx, r.sel.sharingExternal(opts.Object), *opts.ExternalAccess); err != nil {
			return err
		}
	}
	if opts.GrantAccessUsingHierarchies != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.sharingHierarchy(opts.Object), *opts.GrantAccessUsingHierarchies); err != nil {
			return err
		}
	}
	return r.saveAndConfirm(ctx)
}

func (r *protocolRunner) applyActivityCapture(ctx context.Context, opts *ActivityCaptureOptions) error {
	if err := r.actor.NavigateToSetup(ctx, pathActivityCapture); err != nil {
		return err
	}
	if opts.Enabled != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.ActivityCaptureEnabled, *opts.Enabled); err != nil {
			return err
		}
	}
	if opts.SyncEmails != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.ActivitySyncEmails, *opts.SyncEmails); err != nil {
			return err
		}
	}
	if opts.SyncEvents != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.ActivitySyncEvents, *opts.SyncEvents); err != nil {
			return err
		}
	}
	return r.saveAndConfirm(ctx)
}

func (r *protocolRunner) applyOmniChannel(ctx context.Context, opts *OmniChannelOptions) error {
	if err := r.actor.NavigateToSetup(ctx, pathOmniChannel); err != nil {
		return err
	}
	if opts.Enabled != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.OmniChannelEnabled, *opts.Enabled); err != nil {
			return err
		}
	}
	if opts.SkillsBasedRouting != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.SkillsBasedRouting, *opts.SkillsBasedRouting); err != nil {
			return err
		}
	}
	return r.saveAndConfirm(ctx)
}

func (r *protocolRunner) applyFlowActivation(ctx context.Context, opts *FlowOptions) error {
	if err := r.actor.NavigateToSetup(ctx, pathFlows); err != nil {
		return err
	}
	if err := r.actor.SetInputValue(ctx, r.sel.FlowSearchInput, opts.FlowAPIName); err != nil {
		return err
	}
	// A flow the search does not surface is a hard failure here.
	if err := r.actor.ClickButtonByLabel(ctx, opts.FlowAPIName); err != nil {
		return err
	}
	action := "Deactivate"
	if opts.Activate {
		action = "Activate"
	}
	if err := r.actor.ClickButtonByLabel(ctx, action); err != nil {
		return err
	}
	// Some flow versions prompt for confirmation, some do not. A missing
	// dialog is tolerated; any other dialog failure is not.
	if err := r.actor.ConfirmDialog(ctx, true); err != nil && !IsElementNotFound(err) {
		return err
	}
	if _, err := r.actor.WaitForToast(ctx, ""); err != nil {
		return err
	}
	return nil
}

func (r *protocolRunner) applyOrgWideEmail(ctx context.Context, opts *OrgWideEmailOptions) error {
	if err := r.actor.NavigateToSetup(ctx, pathOrgWideEmails); err != nil {
		return err
	}
	if err := r.actor.ClickButtonByLabel(ctx, "Add"); err != nil {
		return err
	}
	if err := r.actor.SetInputValue(ctx, r.sel.EmailDisplayName, opts.DisplayName); err != nil {
		return err
	}
	if err := r.actor.SetInputValue(ctx, r.sel.EmailAddress, opts.Address); err != nil {
		return err
	}
	if opts.AllowAllProfiles != nil {
		if err := r.actor.SetCheckboxState(ctx, r.sel.EmailAllowAllProfiles, *opts.AllowAllProfiles); err != nil {
			return err
		}
	}
	return r.saveAndConfirm(ctx)
}

// saveAndConfirm clicks Save and waits for the save confirmation.
func (r *protocolRunner) saveAndConfirm(ctx context.Context) error {
	if err := r.actor.ClickButtonByLabel(ctx, "Save"); err != nil {
		return err
	}
	if _, err := r.actor.WaitForToast(ctx, savedToast); err != nil {
		return err
	}
	return nil
}
