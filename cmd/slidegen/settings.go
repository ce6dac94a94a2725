package main

import (
	"context"
	"encoding/json"
	"fmt"

	"slidegen/cmd/slidegen/ui"
	"slidegen/internal/localization"
	"slidegen/internal/store"

	"github.com/spf13/cobra"
)

// settingsCmd manages the persistent user settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd, settingsResetCmd)
}

func formatSetting(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.settings.All(context.Background())
	if err != nil {
		return err
	}
	t := ui.NewTable("", a.catalog.T("col_key"), a.catalog.T("col_value"))
	for _, key := range store.Keys() {
		v, ok := all[key]
		if !ok {
			v = store.Defaults[key]
		}
		t.AddRow(key, formatSetting(v))
	}
	fmt.Fprint(cmd.OutOrStdout(), t.View(a.styles))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key := args[0]
	if _, known := store.Defaults[key]; !known {
		return fmt.Errorf("%w: %s", store.ErrUnknownSetting, key)
	}
	v, ok, err := a.settings.Get(context.Background(), key)
	if err != nil {
		return err
	}
	if !ok {
		v = store.Defaults[key]
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatSetting(v))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	v, err := store.Coerce(key, args[1])
	if err != nil {
		return err
	}
	if key == store.KeyInterfaceLanguage {
		lang, err := localization.ParseLanguage(args[1])
		if err != nil {
			return err
		}
		v = string(lang)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.settings.Set(context.Background(), key, v); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, formatSetting(v))
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.settings.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render("Settings restored to defaults"))
	return nil
}
