package commands

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appanalysis "github.com/repolens/repolens/internal/application/analysis"
	"github.com/repolens/repolens/internal/infra/github"
	"github.com/repolens/repolens/internal/render"
)

func AnalyzeCmd() *cobra.Command {
	var (
		token   string
		asJSON  bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze <locator>",
		Short: "Analyze one repository and print its capability profile",
		Long: `Analyze fetches repository metadata from GitHub and prints the derived
capability profile as a markdown report (or raw JSON with --json).

The locator accepts owner/repo, a full https URL, or an ssh remote.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if token == "" {
				token = os.Getenv("GITHUB_TOKEN")
			}

			provider := github.New(token)
			profile, err := appanalysis.Inspect(cmd.Context(), provider, args[0], time.Now())
			if err != nil {
				return err
			}

			var out []byte
			if asJSON {
				out, err = json.MarshalIndent(profile, "", "  ")
				if err != nil {
					return err
				}
				out = append(out, '\n')
			} else {
				out = []byte(render.Markdown(profile))
			}

			if outPath != "" {
				return os.WriteFile(outPath, out, 0o644)
			}
			cmd.Print(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (defaults to GITHUB_TOKEN)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw profile as JSON")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}
