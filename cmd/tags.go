package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tagsDetailed bool
	tagsJSON     bool
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags across the inbox",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return err
		}
		defer store.Close()

		if tagsDetailed {
			stats, err := store.DetailedTags(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading tag stats: %w", err)
			}
			if tagsJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			if len(stats) == 0 {
				fmt.Println("no tags")
				return nil
			}
			fmt.Printf("  %-24s %6s  %s\n", "TAG", "NOTES", "LAST MODIFIED")
			for _, s := range stats {
				fmt.Printf("  %-24s %6d  %s\n",
					s.Name, s.Count, s.LastModified.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}

		tags, err := store.AllTags(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading tags: %w", err)
		}
		if tagsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tags)
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsDetailed, "detailed", false, "Include note counts and last-modified times")
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(tagsCmd)
}
