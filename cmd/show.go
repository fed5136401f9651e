package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inboxd/internal/db"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show a note and its comment thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid note id: %s", args[0])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return err
		}
		defer store.Close()

		note, err := store.GetNote(cmd.Context(), id)
		if err != nil {
			return err
		}
		comments, err := store.CommentsForNote(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("loading comments: %w", err)
		}

		if showJSON {
			replies := make([]db.Note, 0, len(comments))
			for _, c := range comments {
				replies = append(replies, c.Note)
			}
			output := struct {
				Note     *db.Note  `json:"note"`
				Comments []db.Note `json:"comments"`
			}{note, replies}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(output)
		}

		printThread(note, comments)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}

func printThread(note *db.Note, comments []db.Comment) {
	fmt.Printf("#%d  %s\n", note.ID, note.CreatedAt.Local().Format("2006-01-02 15:04"))
	if len(note.Tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(note.Tags, ", "))
	}
	fmt.Printf("\n%s\n", note.Content)

	if len(comments) == 0 {
		return
	}
	fmt.Printf("\n%d comment(s):\n", len(comments))
	for _, c := range comments {
		fmt.Printf("\n  #%d  %s\n", c.Note.ID, c.Relation.CreatedAt.Local().Format("2006-01-02 15:04"))
		for _, line := range strings.Split(c.Note.Content, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
}
