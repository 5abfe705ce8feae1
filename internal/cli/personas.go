// personas.go implements the "tutor personas" commands for managing
// tutoring personas stored on the server.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorterm/tutor/internal/api"
)

var (
	personaTags    string
	personaDefault bool
	personaName    string
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Manage tutoring personas",
}

var personasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your personas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		personas, err := client.ListPersonas(cmd.Context())
		if err != nil {
			return err
		}
		if len(personas) == 0 {
			fmt.Println("No personas yet; create one with: tutor personas create <name>")
			return nil
		}

		for _, p := range personas {
			marker := " "
			if p.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %-36s  %s", marker, p.ID, p.Name)
			if p.Tags != "" {
				fmt.Printf("  [%s]", p.Tags)
			}
			fmt.Println()
		}
		return nil
	},
}

var personasShowCmd = &cobra.Command{
	Use:   "show <persona-id>",
	Short: "Show a persona's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		p, err := client.GetPersona(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:    %s\n", p.Name)
		if p.Tags != "" {
			fmt.Printf("Tags:    %s\n", p.Tags)
		}
		fmt.Printf("Default: %v\n", p.IsDefault)
		for k, v := range p.Profile {
			fmt.Printf("  %s: %v\n", k, v)
		}
		return nil
	},
}

var personasCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		p, err := client.CreatePersona(cmd.Context(), api.PersonaCreate{
			Name:      args[0],
			Tags:      personaTags,
			IsDefault: personaDefault,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created persona %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var personasUpdateCmd = &cobra.Command{
	Use:   "update <persona-id>",
	Short: "Update a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		var in api.PersonaUpdate
		if cmd.Flags().Changed("name") {
			in.Name = &personaName
		}
		if cmd.Flags().Changed("tags") {
			in.Tags = &personaTags
		}
		if cmd.Flags().Changed("default") {
			in.IsDefault = &personaDefault
		}

		p, err := client.UpdatePersona(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Printf("Updated persona %s\n", p.Name)
		return nil
	},
}

func init() {
	personasCreateCmd.Flags().StringVar(&personaTags, "tags", "", "Comma-separated tags")
	personasCreateCmd.Flags().BoolVar(&personaDefault, "default", false, "Make this the default persona")

	personasUpdateCmd.Flags().StringVar(&personaName, "name", "", "New persona name")
	personasUpdateCmd.Flags().StringVar(&personaTags, "tags", "", "New comma-separated tags")
	personasUpdateCmd.Flags().BoolVar(&personaDefault, "default", false, "Make this the default persona")

	personasCmd.AddCommand(personasListCmd)
	personasCmd.AddCommand(personasShowCmd)
	personasCmd.AddCommand(personasCreateCmd)
	personasCmd.AddCommand(personasUpdateCmd)
}
