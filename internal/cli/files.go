// files.go implements the "tutor files" commands for managing files
// the tutor has stored for your account.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tutorterm/tutor/internal/api"
)

var (
	uploadSession     string
	uploadDescription string
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage stored files",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your stored files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		files, err := client.ListFiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No stored files")
			return nil
		}

		for _, f := range files {
			fmt.Printf("%-36s  %8s  %s\n", f.ID, formatSize(f.FileSize), f.FileName)
		}
		return nil
	},
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cli: opening %s: %w", args[0], err)
		}
		defer f.Close()

		info, err := client.UploadFile(cmd.Context(), filepath.Base(args[0]), f, uploadSession, uploadDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s, %s)\n", info.FileName, info.ID, formatSize(info.FileSize))
		return nil
	},
}

var filesGetCmd = &cobra.Command{
	Use:   "get <file-id> [dest]",
	Short: "Download a stored file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		info, err := findFile(cmd, client, args[0])
		if err != nil {
			return err
		}

		dest := info.FileName
		if len(args) == 2 {
			dest = args[1]
		}

		body, err := client.DownloadFile(cmd.Context(), info.FileURL)
		if err != nil {
			return err
		}
		defer body.Close()

		out, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("cli: creating %s: %w", dest, err)
		}
		defer out.Close()

		n, err := io.Copy(out, body)
		if err != nil {
			return fmt.Errorf("cli: writing %s: %w", dest, err)
		}
		fmt.Printf("Saved %s (%s)\n", dest, formatSize(n))
		return nil
	},
}

// findFile resolves a file id through the list endpoint; the service
// exposes downloads by path, not by id.
func findFile(cmd *cobra.Command, client *api.Client, id string) (*api.FileInfo, error) {
	files, err := client.ListFiles(cmd.Context())
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].ID == id {
			return &files[i], nil
		}
	}
	return nil, fmt.Errorf("no stored file with id %s", id)
}

var filesRmCmd = &cobra.Command{
	Use:   "rm <file-id>",
	Short: "Delete a stored file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		if err := client.DeleteFile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted")
		return nil
	},
}

var filesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		stats, err := client.FileStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Files: %d\n", stats.TotalFiles)
		fmt.Printf("Size:  %s\n", formatSize(stats.TotalSize))
		for typ, n := range stats.ByType {
			fmt.Printf("  %s: %d\n", typ, n)
		}
		return nil
	},
}

// formatSize renders a byte count in a human-readable unit.
func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func init() {
	filesUploadCmd.Flags().StringVar(&uploadSession, "session", "", "Session id to attach the file to")
	filesUploadCmd.Flags().StringVar(&uploadDescription, "description", "", "File description")

	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesGetCmd)
	filesCmd.AddCommand(filesRmCmd)
	filesCmd.AddCommand(filesStatsCmd)
}
