package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hoax-detector/client/internal/share"
	"hoax-detector/client/internal/tui"
	"hoax-detector/client/internal/ui"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := opts.client()
			orch := ui.New(ui.Deps{
				BaseURL: client.BaseURL(),
				Health:  client,
				Display: tui.NewConsole(cmd.OutOrStdout(), false),
			})
			return orch.Startup(cmd.Context())
		},
	}
}

// checkResult is the --json output of the check command.
type checkResult struct {
	Verdict         string `json:"verdict"`
	Badge           string `json:"badge"`
	BadgeClass      string `json:"badge_class"`
	Decision        string `json:"decision"`
	ScoreSummary    string `json:"score_summary"`
	RiskExplanation string `json:"risk_explanation"`
	Text            string `json:"text"`
	ShareText       string `json:"share_text"`
}

func newCheckCmd(opts *options) *cobra.Command {
	var copyResult, shareResult, asJSON bool
	cmd := &cobra.Command{
		Use:   "check [text]",
		Short: "Classify a news text; reads stdin when text is omitted or '-'",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			db, closeDB := opts.openPreferences()
			defer closeDB()

			client := opts.client()
			console := tui.NewConsole(cmd.OutOrStdout(), asJSON)
			orch := ui.New(ui.Deps{
				BaseURL:     client.BaseURL(),
				Predictor:   client,
				Display:     console,
				Clipboard:   newClipboard(),
				Sharer:      share.NewCommandSharer(opts.cfg.ShareCommand),
				Preferences: preferenceStore(db),
			})

			ctx := cmd.Context()
			if err := orch.Startup(ctx); err != nil {
				return err
			}
			if err := orch.Submit(ctx, text); err != nil {
				return err
			}
			if copyResult {
				if err := orch.Copy(ctx); err != nil {
					return err
				}
			}
			if shareResult {
				if err := orch.Share(ctx); err != nil {
					return err
				}
			}
			if !asJSON {
				return nil
			}

			state, ok := console.Result()
			if !ok {
				return errors.New("no prediction rendered")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(checkResult{
				Verdict:         state.Verdict.String(),
				Badge:           state.Badge.Text,
				BadgeClass:      string(state.Badge.Class),
				Decision:        state.Decision,
				ScoreSummary:    state.ScoreSummary,
				RiskExplanation: state.RiskExplanation,
				Text:            state.OriginalText,
				ShareText:       state.ShareText,
			})
		},
	}
	cmd.Flags().BoolVar(&copyResult, "copy", false, "copy the shareable summary to the clipboard")
	cmd.Flags().BoolVar(&shareResult, "share", false, "hand the summary to the share command (falls back to the clipboard)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func readText(in io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func newTUICmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive checker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			restore, err := opts.redirectLogs()
			if err != nil {
				return err
			}
			defer restore()

			db, closeDB := opts.openPreferences()
			defer closeDB()

			client := opts.client()
			panel := tui.NewPanel()
			orch := ui.New(ui.Deps{
				BaseURL:     client.BaseURL(),
				Predictor:   client,
				Health:      client,
				Display:     panel,
				Clipboard:   newClipboard(),
				Sharer:      share.NewCommandSharer(opts.cfg.ShareCommand),
				Preferences: preferenceStore(db),
			})

			ctx := cmd.Context()
			program := tea.NewProgram(
				tui.NewModel(ctx, orch, panel),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = program.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of discarding them")
	return cmd
}

func newThemeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the saved colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(ui.ThemeLight), string(ui.ThemeDark), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB := opts.openPreferences()
			defer closeDB()
			if db == nil {
				return errors.New(ui.MsgThemeSaveFail)
			}

			out := cmd.OutOrStdout()
			console := tui.NewConsole(out, true)
			orch := ui.New(ui.Deps{Display: console, Preferences: db})
			ctx := cmd.Context()
			current := orch.RestoreTheme(ctx)

			if len(args) == 0 {
				_, err := fmt.Fprintln(out, current)
				return err
			}

			var next ui.Theme
			if strings.EqualFold(args[0], "toggle") {
				next = current.Toggle()
			} else {
				parsed, ok := ui.ParseTheme(args[0])
				if !ok {
					return fmt.Errorf("unknown theme %q", args[0])
				}
				next = parsed
			}
			if err := orch.SetTheme(ctx, next); err != nil {
				return err
			}
			_, err := fmt.Fprintf(out, ui.MsgThemeChanged+"\n", next)
			return err
		},
	}
}
