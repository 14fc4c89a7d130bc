package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ledongthuc/pdf"
	"github.com/spf13/cobra"

	"github.com/madhaviai/my-profile-mcp-server/internal/catalog"
	"github.com/madhaviai/my-profile-mcp-server/internal/config"
	"github.com/madhaviai/my-profile-mcp-server/internal/profile"
)

// loadCatalog builds the dispatcher locally, the same way serve does.
func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return nil, err
	}
	return catalog.New(store), nil
}

// --- tools ---

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered profile tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		for _, d := range cat.Tools() {
			fmt.Printf("%s\n", colorize(colorBold, d.Name))
			fmt.Printf("    %s\n", d.Description)
			for _, p := range d.Params {
				req := "optional"
				if p.Required {
					req = "required"
				}
				fmt.Printf("    - %s (%s, %s): %s\n", p.Name, p.Type, req, p.Description)
			}
		}
		return nil
	},
}

// --- call ---

var callArgs string

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a profile tool locally and print its JSON payload",
	Long: `Invoke a profile tool locally and print its JSON payload.

Examples:
  profile-mcp call get_basic_info
  profile-mcp call get_skills --args '{"category": "ai_ml"}'
  profile-mcp call search_skills --args '{"query": "Kubernetes"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		toolArgs := map[string]any{}
		if callArgs != "" {
			if err := json.Unmarshal([]byte(callArgs), &toolArgs); err != nil {
				return fmt.Errorf("parsing --args: %w", err)
			}
		}

		payload, err := cat.Invoke(args[0], toolArgs)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	callCmd.Flags().StringVar(&callArgs, "args", "", "tool arguments as a JSON object")
}

// --- check ---

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a profile definition",
	Long: `Validate a profile definition.

With no argument, checks the definition the server would load (config
profile.path, or the embedded default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path = cfg.Profile.Path
		}

		store, err := profile.Load(path)
		if err != nil {
			printError("profile definition is invalid")
			return err
		}

		p := store.Profile()
		printSuccess("profile definition is valid")
		printStatus("Name", "%s", p.Name)
		printStatus("Title", "%s", p.Title)
		printStatus("Skills", "%d", len(p.Skills))
		printStatus("Education", "%d entries", len(p.Education))
		printStatus("Contact channels", "%d", len(p.Contact))
		return nil
	},
}

// --- import ---

var importOut string

var importCmd = &cobra.Command{
	Use:   "import <resume.pdf>",
	Short: "Extract text from a PDF resume into a draft profile definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, reader, err := pdf.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening PDF: %w", err)
		}
		defer f.Close()

		plain, err := reader.GetPlainText()
		if err != nil {
			return fmt.Errorf("extracting text: %w", err)
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, plain); err != nil {
			return fmt.Errorf("reading extracted text: %w", err)
		}

		text := strings.TrimSpace(buf.String())
		if text == "" {
			return fmt.Errorf("no text extracted from %s", args[0])
		}

		draft := draftProfile(text)
		out, err := os.Create(importOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", importOut, err)
		}
		defer out.Close()
		if err := toml.NewEncoder(out).Encode(draft); err != nil {
			return fmt.Errorf("writing draft: %w", err)
		}

		printSuccess("Draft profile written to %s", importOut)
		printWarning("Review and edit the draft — title, skills, education, and contact need filling in")
		return nil
	},
}

// draftProfile turns raw resume text into a skeleton definition: the first
// line usually carries the person's name, the rest becomes the summary.
func draftProfile(text string) profile.Profile {
	name := "EDIT ME"
	lines := strings.SplitN(text, "\n", 2)
	if first := strings.TrimSpace(lines[0]); first != "" {
		name = first
	}
	return profile.Profile{
		Name:    name,
		Title:   "EDIT ME",
		Summary: text,
	}
}

func init() {
	importCmd.Flags().StringVar(&importOut, "out", "profile.toml", "output path for the draft definition")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
