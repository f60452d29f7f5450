package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/validateme/outreach/internal/digest"
	"github.com/validateme/outreach/internal/notifications"
)

var digestCmd = &cobra.Command{
	Use:   "digest [keywords...]",
	Short: "Run the digest once and send it, or print it with --print",
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := cfg.DigestKeywords
		if len(args) > 0 {
			keywords = args
		}
		if len(keywords) == 0 {
			return fmt.Errorf("no digest keywords: pass them as arguments or set DIGEST_KEYWORDS")
		}

		printOnly, _ := cmd.Flags().GetBool("print")
		if !printOnly && !cfg.NotificationsEnabled() {
			return fmt.Errorf("no notification method configured; set TEAMS_WEBHOOK_URL or NOTIFICATION_EMAIL, or use --print")
		}

		service := digest.NewService(newSearchService(), notifications.NewService(cfg), keywords)

		if printOnly {
			fmt.Print(notifications.BuildText(service.Build(cmd.Context())))
			return nil
		}

		if err := service.Run(cmd.Context()); err != nil {
			return err
		}
		logrus.Info("Digest sent")
		return nil
	},
}

func init() {
	digestCmd.Flags().Bool("print", false, "print the digest instead of sending it")

	rootCmd.AddCommand(digestCmd)
}
