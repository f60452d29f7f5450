package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate three outreach drafts for a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("author")
		title, _ := cmd.Flags().GetString("title")
		snippet, _ := cmd.Flags().GetString("snippet")

		templates, err := newGenerator().Generate(cmd.Context(), author, title, snippet)
		if err != nil {
			return err
		}

		fmt.Println(templates)
		return nil
	},
}

func init() {
	draftCmd.Flags().String("author", "", "post author handle (without u/)")
	draftCmd.Flags().String("title", "", "post title")
	draftCmd.Flags().String("snippet", "", "post body snippet")
	_ = draftCmd.MarkFlagRequired("author")

	rootCmd.AddCommand(draftCmd)
}
