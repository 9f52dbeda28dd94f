package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/orgforge/orgforge/pkg/engine"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply a single configuration operation",
		Long: `Apply one configuration operation without a batch document.

Single operations always use abort semantics: a failure is reported as an
error. Fields not set on the command line leave the org's current values
unchanged.`,
	}

	cmd.AddCommand(newRunSessionCommand())
	cmd.AddCommand(newRunSharingCommand())
	cmd.AddCommand(newRunActivityCommand())
	cmd.AddCommand(newRunOmniCommand())
	cmd.AddCommand(newRunFlowCommand())
	cmd.AddCommand(newRunEmailCommand())

	return cmd
}

// applySingle resolves the target, runs one operation, and reports it.
func applySingle(cmd *cobra.Command, op engine.Operation) error {
	target, err := resolveTarget()
	if err != nil {
		return err
	}

	orch, cleanup, err := newOrchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info().Str("operation", op.Label()).Msg("Applying operation")

	started := time.Now()
	result, runErr := orch.ApplySingle(cmd.Context(), target, op)
	recordRun(cmd.Context(), target, result, 1, false, started, runErr)

	if result != nil {
		fmt.Print(result.Summary())
	}
	return runErr
}

// boolFlag returns a pointer only when the flag was set on the command line.
func boolFlag(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func newRunSessionCommand() *cobra.Command {
	var (
		timeout     int
		lockToIP    bool
		forceLogout bool
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Update session security settings",
		Example: `  # Set the session timeout to 30 minutes
  orgforge run session --timeout 30

  # Lock sessions to the originating IP
  orgforge run session --lock-to-ip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &engine.SessionSettingsOptions{
				LockSessionsToIP:     boolFlag(cmd, "lock-to-ip", lockToIP),
				ForceLogoutOnTimeout: boolFlag(cmd, "force-logout", forceLogout),
			}
			if cmd.Flags().Changed("timeout") {
				opts.SessionTimeout = &timeout
			}
			return applySingle(cmd, engine.Operation{
				Kind:            engine.KindSessionSettings,
				SessionSettings: opts,
			})
		},
	}

	cmd.Flags().IntVar(&timeout, "timeout", 0, "session timeout in minutes")
	cmd.Flags().BoolVar(&lockToIP, "lock-to-ip", false, "lock sessions to the originating IP")
	cmd.Flags().BoolVar(&forceLogout, "force-logout", false, "force logout on session timeout")

	return cmd
}

func newRunSharingCommand() *cobra.Command {
	var (
		internal    string
		external    string
		hierarchies bool
	)

	cmd := &cobra.Command{
		Use:   "sharing <object>",
		Short: "Update an object's organization-wide defaults",
		Example: `  # Make Account private internally
  orgforge run sharing Account --internal Private

  # Grant access using hierarchies for Case
  orgforge run sharing Case --hierarchies`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &engine.SharingRuleOptions{
				Object:                      args[0],
				GrantAccessUsingHierarchies: boolFlag(cmd, "hierarchies", hierarchies),
			}
			if cmd.Flags().Changed("internal") {
				opts.InternalAccess = &internal
			}
			if cmd.Flags().Changed("external") {
				opts.ExternalAccess = &external
			}
			return applySingle(cmd, engine.Operation{
				Kind:    engine.KindSharingSettings,
				Sharing: opts,
			})
		},
	}

	cmd.Flags().StringVar(&internal, "internal", "", "default internal access level")
	cmd.Flags().StringVar(&external, "external", "", "default external access level")
	cmd.Flags().BoolVar(&hierarchies, "hierarchies", false, "grant access using hierarchies")

	return cmd
}

func newRunActivityCommand() *cobra.Command {
	var (
		enabled    bool
		syncEmails bool
		syncEvents bool
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Update activity capture settings",
		Example: `  # Enable activity capture with email sync
  orgforge run activity --enabled --sync-emails`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return applySingle(cmd, engine.Operation{
				Kind: engine.KindActivityCapture,
				ActivityCapture: &engine.ActivityCaptureOptions{
					Enabled:    boolFlag(cmd, "enabled", enabled),
					SyncEmails: boolFlag(cmd, "sync-emails", syncEmails),
					SyncEvents: boolFlag(cmd, "sync-events", syncEvents),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", false, "enable activity capture")
	cmd.Flags().BoolVar(&syncEmails, "sync-emails", false, "sync emails")
	cmd.Flags().BoolVar(&syncEvents, "sync-events", false, "sync events")

	return cmd
}

func newRunOmniCommand() *cobra.Command {
	var (
		enabled       bool
		skillsRouting bool
	)

	cmd := &cobra.Command{
		Use:   "omni",
		Short: "Update omni-channel settings",
		Example: `  # Enable omni-channel with skills-based routing
  orgforge run omni --enabled --skills-routing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return applySingle(cmd, engine.Operation{
				Kind: engine.KindOmniChannel,
				OmniChannel: &engine.OmniChannelOptions{
					Enabled:            boolFlag(cmd, "enabled", enabled),
					SkillsBasedRouting: boolFlag(cmd, "skills-routing", skillsRouting),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", false, "enable omni-channel")
	cmd.Flags().BoolVar(&skillsRouting, "skills-routing", false, "enable skills-based routing")

	return cmd
}

func newRunFlowCommand() *cobra.Command {
	var deactivate bool

	cmd := &cobra.Command{
		Use:   "flow <apiName>",
		Short: "Activate or deactivate a flow",
		Example: `  # Activate a flow
  orgforge run flow Lead_Routing

  # Deactivate a flow
  orgforge run flow Lead_Routing --deactivate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applySingle(cmd, engine.Operation{
				Kind: engine.KindFlowActivation,
				Flow: &engine.FlowOptions{
					FlowAPIName: args[0],
					Activate:    !deactivate,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&deactivate, "deactivate", false, "deactivate instead of activate")

	return cmd
}

func newRunEmailCommand() *cobra.Command {
	var (
		displayName      string
		allowAllProfiles bool
	)

	cmd := &cobra.Command{
		Use:   "email <address>",
		Short: "Register an org-wide email address",
		Example: `  # Register a support address usable by all profiles
  orgforge run email support@acme.example --display-name "Acme Support" --allow-all-profiles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applySingle(cmd, engine.Operation{
				Kind: engine.KindOrgWideEmail,
				OrgWideEmail: &engine.OrgWideEmailOptions{
					DisplayName:      displayName,
					Address:          args[0],
					AllowAllProfiles: boolFlag(cmd, "allow-all-profiles", allowAllProfiles),
				},
			})
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "display name for the address")
	cmd.Flags().BoolVar(&allowAllProfiles, "allow-all-profiles", false, "allow all profiles to send from this address")
	cmd.MarkFlagRequired("display-name")

	return cmd
}
