package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/authenticating"
)

var tokenFlags struct {
	client string
	role   string
	ttl    time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de acesso para a API",
	Long: `Emite um token JWT assinado com AUTH_SECRET.

Perfis:
  analyst    consultas de análise
  admin      consultas, reload do dataset e cron jobs`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenFlags.client, "client", "c", "", "Nome do cliente da API")
	tokenCmd.Flags().StringVarP(&tokenFlags.role, "role", "r", string(domain.RoleAnalyst), "Perfil: analyst ou admin")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 0, "Validade do token (padrão: AUTH_TOKEN_TTL)")
	_ = tokenCmd.MarkFlagRequired("client")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if tokenFlags.ttl > 0 {
		cfg.Auth.TokenTTL = tokenFlags.ttl
	}

	token, expiresAt, err := authenticating.NewService(cfg.Auth).IssueToken(tokenFlags.client, domain.Role(tokenFlags.role))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expira em %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
