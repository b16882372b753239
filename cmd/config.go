package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mrtimely/timely-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit configuration",
	Long:  `Show the current configuration and interactively update the default session duration, completion delay, and notification toggle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		fmt.Println()
		fmt.Println("  Current configuration:")
		fmt.Println()
		fmt.Printf("  Default duration:    %s\n", formatMinutes(time.Duration(appConfig.Session.DefaultDuration)))
		fmt.Printf("  Recovery max age:    %s\n", formatMinutes(time.Duration(appConfig.Session.MaxRecoveryAge)))
		fmt.Printf("  Completion delay:    %s\n", time.Duration(appConfig.Completion.Delay))
		fmt.Printf("  Prompt timeout:      %s\n", time.Duration(appConfig.Completion.PromptTimeout))
		fmt.Printf("  Notifications:       %s\n", onOff(appConfig.Notifications.Enabled))
		fmt.Printf("  Dark theme:          %s\n", onOff(appConfig.Theme.Dark))
		fmt.Println()

		changed := false

		fmt.Print("  New default duration (blank to keep): ")
		if input := readLine(reader); input != "" {
			duration, err := parseDurationArg(input)
			if err != nil {
				return err
			}
			appConfig.Session.DefaultDuration = config.Duration(duration)
			changed = true
		}

		fmt.Print("  New completion delay (blank to keep): ")
		if input := readLine(reader); input != "" {
			delay, err := time.ParseDuration(input)
			if err != nil || delay <= 0 {
				return fmt.Errorf("invalid delay: %s", input)
			}
			appConfig.Completion.Delay = config.Duration(delay)
			changed = true
		}

		fmt.Print("  Toggle notifications? [y/N]: ")
		if input := readLine(reader); input == "y" || input == "yes" {
			appConfig.Notifications.Enabled = !appConfig.Notifications.Enabled
			changed = true
		}

		if !changed {
			fmt.Println("\n  Nothing changed.")
			return nil
		}

		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println("\n  Configuration saved.")
		return nil
	},
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(input))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
