package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/helpbeacon/helpbeacon/internal/config"
	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/helpbeacon/helpbeacon/internal/repository"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/spf13/cobra"
)

func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
		Long:  "Create, list and revoke staff sessions",
	}

	cmd.AddCommand(SessionCreateCmd())
	cmd.AddCommand(SessionListCmd())
	cmd.AddCommand(SessionRevokeCmd())

	return cmd
}

func SessionCreateCmd() *cobra.Command {
	var (
		tenantID int64
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create <user-name>",
		Short: "Create a new session",
		Long:  "Create a session for a named user and print its token. The token is shown only once.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runSessionCreate(args[0], tenantID, role, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().Int64Var(&tenantID, "tenant", domain.DefaultTenantID, "Tenant ID the session belongs to")
	cmd.Flags().StringVar(&role, "role", domain.RoleStaff, "Session role (staff or manager)")

	return cmd
}

func runSessionCreate(userName string, tenantID int64, role, outputFormat string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sessionRepo := repository.NewSessionRepository(pool)
	sessionSvc := service.NewSessionService(sessionRepo, cfg.SessionSecret)

	session, token, err := sessionSvc.CreateSession(ctx, tenantID, userName, role)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"id":        session.ID,
			"tenant_id": session.TenantID,
			"user_name": session.UserName,
			"role":      session.Role,
			"token":     token,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("Session created: %s (%s, tenant %d)\n", session.UserName, session.Role, session.TenantID)
		fmt.Printf("Token: %s\n", token)
		fmt.Println("Store this token now. It cannot be shown again.")
	}

	return nil
}

func SessionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sessions",
		RunE:  runSessionList,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runSessionList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sessionRepo := repository.NewSessionRepository(pool)

	sessions, err := sessionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if outputFormat == "json" {
		data := make([]map[string]interface{}, len(sessions))
		for i, s := range sessions {
			data[i] = map[string]interface{}{
				"id":         s.ID,
				"tenant_id":  s.TenantID,
				"user_name":  s.UserName,
				"role":       s.Role,
				"created_at": s.CreatedAt,
				"revoked":    s.IsRevoked(),
			}
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		if len(sessions) == 0 {
			fmt.Println("No sessions found")
			return nil
		}
		fmt.Println("Sessions:")
		for _, s := range sessions {
			status := "active"
			if s.IsRevoked() {
				status = "revoked"
			}
			fmt.Printf("  %s: %s (%s, tenant %d, %s)\n", s.ID, s.UserName, s.Role, s.TenantID, status)
		}
	}

	return nil
}

func SessionRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <session-id>",
		Short: "Revoke a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pool, err := getDBPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			sessionRepo := repository.NewSessionRepository(pool)
			if err := sessionRepo.Revoke(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to revoke session: %w", err)
			}

			fmt.Printf("Session revoked: %s\n", args[0])
			return nil
		},
	}
}
