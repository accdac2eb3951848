package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/nvimgui/tui/theme"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "logs <file>",
		Short: "Follow a JSON log file written by a running nvimgui component",
		Long: `Tails a log file produced by logging.NewLogger and pretty-prints each
line. Unlike the structured fields, --json passes each JSON Lines
record through unmodified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tail.TailFile(args[0], tail.Config{
				Follow:    true,
				ReOpen:    true,
				MustExist: true,
				Poll:      true,
			})
			if err != nil {
				return fmt.Errorf("tailing %s: %w", args[0], err)
			}
			defer t.Stop()

			for line := range t.Lines {
				if line.Err != nil {
					continue
				}
				if jsonOutput {
					fmt.Println(line.Text)
					continue
				}
				printLogLine(line.Text)
			}
			return t.Err()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print raw JSON Lines instead of formatted text")
	return cmd
}

// printLogLine renders one logrus JSON Lines record the way the text
// formatter would, for logs already captured to a file in JSON form.
func printLogLine(raw string) {
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		fmt.Println(raw)
		return
	}

	ts, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)
	component, _ := entry["component"].(string)

	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = theme.DefaultTheme.Error
	case "warning", "warn":
		levelStyle = theme.DefaultTheme.Warning
	case "info":
		levelStyle = theme.DefaultTheme.Accent
	default:
		levelStyle = theme.DefaultTheme.Muted
	}

	excluded := map[string]bool{"time": true, "level": true, "msg": true, "component": true}
	var keys []string
	for k := range entry {
		if !excluded[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var fields []string
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", theme.DefaultTheme.Muted.Render(k), entry[k]))
	}

	fmt.Printf("%s [%s] %s [%s] %s\n",
		parsedTime.Format("15:04:05"),
		levelStyle.Render(strings.ToUpper(level)),
		msg,
		theme.DefaultTheme.Muted.Render(component),
		strings.Join(fields, " "),
	)
}
