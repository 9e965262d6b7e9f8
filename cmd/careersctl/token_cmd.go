package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/config"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

func newTokenCmd() *cobra.Command {
	var (
		companyID string
		userID    string
		ttl       time.Duration
		slug      string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a preview token for an unpublished careers page",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := config.LoadPart[config.AuthConfig]()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = auth.PreviewTTL
			}

			tokens, err := core.NewPreviewTokens(auth.PreviewSecret, ttl)
			if err != nil {
				return err
			}
			tok, err := tokens.Issue(userID, companyID)
			if err != nil {
				return err
			}

			out := struct {
				core.PreviewToken
				URL string `json:"url,omitempty"`
			}{PreviewToken: tok}
			if slug != "" {
				out.URL = "/preview/" + slug + "?token=" + tok.Token
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID (required)")
	cmd.Flags().StringVar(&userID, "user", "", "Issuing user ID (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default PREVIEW_TOKEN_TTL)")
	cmd.Flags().StringVar(&slug, "slug", "", "Company slug, to print the preview URL")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
