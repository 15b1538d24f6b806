// answers.go implements the "deckhand answers" commands for inspecting
// saved questionnaire sessions.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/berth-dev/deckhand/internal/log"
	"github.com/berth-dev/deckhand/internal/questionnaire"
	"github.com/berth-dev/deckhand/internal/report"
	"github.com/berth-dev/deckhand/internal/session"
	"github.com/berth-dev/deckhand/internal/tui"
	"github.com/berth-dev/deckhand/internal/tui/commands"
)

var answersCmd = &cobra.Command{
	Use:   "answers",
	Short: "Inspect saved questionnaire answers",
}

var answersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent questionnaire sessions",
	Args:  cobra.NoArgs,
	RunE:  runAnswersList,
}

var answersExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export the answers of a session as JSON",
	Long: `Export the answers of a session as JSON. The file is written to
.deckhand/exports/ unless --out is given; --out - prints to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnswersExport,
}

var answersShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a report of one session",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswersShow,
}

var (
	listLimit int
	exportOut string
)

func init() {
	answersListCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of sessions to show")
	answersExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, or - for stdout")

	answersCmd.AddCommand(answersListCmd)
	answersCmd.AddCommand(answersExportCmd)
	answersCmd.AddCommand(answersShowCmd)
}

// openStore opens the session database configured for root.
func openStore(root string) (*session.Store, error) {
	cfg := loadConfig(root)
	path := cfg.DatabasePath(root)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no sessions found at %s; run deckhand and answer a questionnaire first", path)
	}
	return session.NewStore(path)
}

func runAnswersList(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return listSessions(cmd.OutOrStdout(), store, listLimit)
}

func listSessions(w io.Writer, store *session.Store, limit int) error {
	summaries, err := store.ListSessions(limit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No sessions yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tui.DimStyle).
		Headers("ID", "QUESTIONNAIRE", "STATUS", "ANSWERED", "UPDATED")
	for _, s := range summaries {
		t.Row(s.ID, s.Questionnaire, s.Status, strconv.Itoa(s.Answered), s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func runAnswersExport(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	logger, err := log.NewLogger(root)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}

	path, err := exportSession(cmd.OutOrStdout(), store, logger, root, args[0], exportOut)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", path)
	}
	return nil
}

// exportSession writes one session's answers to out ("" picks the default
// path, "-" writes to w). It returns the file written, if any.
func exportSession(w io.Writer, store *session.Store, logger *log.Logger, root, id, out string) (string, error) {
	sess, err := store.GetSession(id)
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	if sess == nil {
		return "", fmt.Errorf("session %s not found", id)
	}
	a, err := store.GetAnswers(id)
	if err != nil {
		return "", fmt.Errorf("reading answers: %w", err)
	}

	if out == "-" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return "", enc.Encode(commands.ExportFile{
			Questionnaire: sess.Questionnaire,
			SessionID:     sess.ID,
			ExportedAt:    sess.UpdatedAt,
			Answers:       a.Export(),
		})
	}

	if out == "" {
		out = commands.ExportPath(root, sess.Questionnaire, sess.ID)
	}
	if err := commands.WriteExport(out, sess.Questionnaire, sess.ID, a); err != nil {
		return "", err
	}
	_ = logger.Append(log.LogEvent{
		Event:         log.EventAnswersExported,
		SessionID:     sess.ID,
		Questionnaire: sess.Questionnaire,
		Answered:      a.Len(),
		Data:          map[string]any{"path": out},
	})
	return out, nil
}

func runAnswersShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	md, err := sessionReport(store, root, args[0])
	if err != nil {
		return err
	}
	if !tui.IsTTY() {
		_, err = io.WriteString(cmd.OutOrStdout(), md)
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), commands.RenderMarkdown(md, terminalWidth()))
	return err
}

// sessionReport renders the markdown report of one session.
func sessionReport(store *session.Store, root, id string) (string, error) {
	sess, err := store.GetSession(id)
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	if sess == nil {
		return "", fmt.Errorf("session %s not found", id)
	}
	a, err := store.GetAnswers(id)
	if err != nil {
		return "", fmt.Errorf("reading answers: %w", err)
	}

	var qn *questionnaire.Questionnaire
	if qns, err := loadQuestionnaires(root); err == nil {
		for _, q := range qns {
			if q.ID == sess.Questionnaire {
				qn = q
				break
			}
		}
	}

	var events []log.LogEvent
	if logger, err := log.NewLogger(root); err == nil {
		events, _ = logger.ReadAll()
	}

	return report.FormatReport(report.GenerateReport(qn, sess, a, events)), nil
}
