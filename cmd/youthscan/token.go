package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"github.com/y4jaiops/y4j-YouthScan/internal/server"
)

var tokenOperator string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator token for the admin endpoints",
	Long:  "Sign a bearer token with ADMIN_JWT_SECRET for use with POST /admin/cleanup.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOperator, "operator", "", "Operator name recorded as the token subject (required)")
	_ = tokenCmd.MarkFlagRequired("operator")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenOperator)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
