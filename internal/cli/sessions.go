// sessions.go implements the "tutor sessions" commands for browsing
// past conversations.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tutorterm/tutor/internal/markdown"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse past conversations",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st, err := requireAuth()
		if err != nil {
			return err
		}

		sessions, err := client.ListSessions(cmd.Context(), st.UserID)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No conversations yet")
			return nil
		}

		for _, s := range sessions {
			last := strings.TrimSpace(s.LastMsg)
			if len(last) > 60 {
				last = last[:60] + "…"
			}
			fmt.Printf("%s  %s  %s\n", s.SessionKey, s.UpdatedAt.Local().Format("2006-01-02 15:04"), last)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a conversation transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		msgs, err := client.SessionMessages(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("Empty conversation")
			return nil
		}

		render := transcriptRenderer()
		for _, m := range msgs {
			label := m.Role
			if label == "user" {
				label = "you"
			}
			body := m.Content
			if label != "you" {
				body = render(body)
			}
			fmt.Printf("[%s] %s\n%s\n\n", m.CreatedAt.Local().Format("15:04"), label, body)
		}
		return nil
	},
}

// transcriptRenderer renders tutor replies as markdown when writing to
// a terminal; --plain or a pipe gets the raw text.
func transcriptRenderer() func(string) string {
	if plainFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		return func(s string) string { return s }
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	renderer := markdown.NewRenderer()
	return func(s string) string {
		return strings.Join(renderer.RenderContent(s, width), "\n")
	}
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
}
