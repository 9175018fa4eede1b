package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/skratchdot/open-golang/open"
	"nightlightctl.app/nightlightctl/internal/config"
	"nightlightctl.app/nightlightctl/internal/gsettings"
	"nightlightctl.app/nightlightctl/internal/interactive"
	"nightlightctl.app/nightlightctl/internal/settings"
)

var (
	version     string
	build       string
	presetArg   = flag.String("p", "", "Apply a preset: most-warm, very-warm, warm, neutral, cool, most-cool.")
	tempArg     = flag.Uint("t", 0, "Night light color temperature in Kelvin (1700-4700).")
	enablePtr   = flag.Bool("enable", true, "Turn night light on or off (-enable=false).")
	autoPtr     = flag.Bool("auto", false, "Let the desktop schedule night light from sunset to sunrise.")
	fromArg     = flag.Float64("from", 0, "Manual schedule start hour (0-24).")
	toArg       = flag.Float64("to", 24, "Manual schedule end hour (0-24).")
	scaleArg    = flag.Float64("scale", 1, "Text scaling factor (0.5-3.0).")
	modeArg     = flag.String("mode", "", "Color effects: normal, monochrome, red_green, or a comma separated list.")
	configArg   = flag.String("c", "", "Path to the preferences file.")
	noConfigPtr = flag.Bool("no-config", false, "Ignore the preferences file.")
	listPtr     = flag.Bool("l", false, "List the available presets.")
	statusPtr   = flag.Bool("s", false, "Print the current settings.")
	interPtr    = flag.Bool("i", false, "Adjust the settings interactively.")
	editPtr     = flag.Bool("edit", false, "Open the preferences file in the default editor.")
	debugPtr    = flag.Bool("debug", false, "Log every settings call to stderr.")
	versionPtr  = flag.Bool("version", false, "Print version.")
)

func main() {
	flag.Parse()

	var logOutput io.Writer
	if *debugPtr {
		logOutput = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	client := settings.NewClient(gsettings.ExecRunner{})
	client.Store.LogOutput = logOutput

	exit, err := checkflags(client)
	check(err)
	if exit {
		os.Exit(0)
	}

	if _, err := checkTool(client); err != nil {
		check(errors.Wrap(err, "settings tool check error"))
	}

	current, err := client.ReadSystem()
	check(errors.Wrap(err, "read current settings error"))

	if *interPtr {
		scr, err := interactive.InitTcellNewScreen(client)
		check(err)
		check(scr.InterInit(current))
		return
	}

	prefs, err := loadPreferences(logOutput)
	check(errors.Wrap(err, "preferences error"))

	set := setFlags()
	if *statusPtr || (prefs.IsEmpty() && !requestsChange(set)) {
		printStatus(os.Stdout, current)
		return
	}

	cfg, err := mergeConfig(current, prefs, set)
	check(errors.Wrap(err, "configuration error"))

	err = client.ApplySystem(cfg)
	check(errors.Wrap(err, "apply settings error"))
}

func check(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Encountered error(s): %s\n", err)
		os.Exit(1)
	}
}

func checkflags(client *settings.Client) (exit bool, err error) {
	checkVerflag(client)

	if err := checkPflag(); err != nil {
		return false, errors.Wrap(err, "checkflags error")
	}

	if err := checkModeflag(); err != nil {
		return false, errors.Wrap(err, "checkflags error")
	}

	if checkLflag() {
		return true, nil
	}

	edit, err := checkEditflag()
	if err != nil {
		return false, errors.Wrap(err, "checkflags error")
	}

	return edit, nil
}

func checkVerflag(client *settings.Client) {
	if *versionPtr {
		fmt.Printf("nightlightctl Version: %s, ", version)
		fmt.Printf("Build: %s\n", build)
		if v, err := gsettings.CheckTool(client.Store.Runner, client.Store.Tool); err == nil {
			fmt.Printf("%s Version: %s\n", client.Store.Tool, v)
		}
		os.Exit(0)
	}
}

func checkPflag() error {
	if *presetArg == "" {
		return nil
	}

	if _, err := settings.ParsePreset(*presetArg); err != nil {
		return errors.Wrap(err, "checkPflag error")
	}

	return nil
}

func checkModeflag() error {
	if *modeArg == "" {
		return nil
	}

	if _, err := settings.ParseEffects(*modeArg); err != nil {
		return errors.Wrap(err, "checkModeflag error")
	}

	return nil
}

func checkLflag() bool {
	if !*listPtr {
		return false
	}

	boldStart := ""
	boldEnd := ""

	if runtime.GOOS == "linux" {
		boldStart = "\033[1m"
		boldEnd = "\033[0m"
	}

	fmt.Println()
	for _, p := range settings.Presets() {
		fmt.Printf("%s%-10s%s %d K\n", boldStart, p, boldEnd, p.Config().Temperature)
	}
	fmt.Println()

	return true
}

func checkEditflag() (bool, error) {
	if !*editPtr {
		return false, nil
	}

	path, err := preferencesPath()
	if err != nil {
		return false, errors.Wrap(err, "checkEditflag error")
	}

	if err := config.WriteTemplate(path); err != nil {
		return false, errors.Wrap(err, "checkEditflag error")
	}

	if err := open.Run(path); err != nil {
		return false, errors.Wrap(err, "checkEditflag open error")
	}

	return true, nil
}

// checkTool makes sure the settings tool runs before anything is read.
// An old release is only worth a warning.
func checkTool(client *settings.Client) (string, error) {
	v, err := gsettings.CheckTool(client.Store.Runner, client.Store.Tool)
	if err != nil {
		return "", err
	}

	if !gsettings.IsSupportedVersion(v) {
		client.Store.Log().Warn().Str("Version", v).Str("Minimum", gsettings.MinimumToolVersion).
			Msg("settings tool is older than tested")
	}

	return v, nil
}

func preferencesPath() (string, error) {
	if *configArg != "" {
		return *configArg, nil
	}
	return config.DefaultPath()
}

func loadPreferences(logOutput io.Writer) (*config.Preference, error) {
	if *noConfigPtr {
		return nil, nil
	}

	path, err := preferencesPath()
	if err != nil {
		return nil, err
	}

	l := &config.Loader{Path: path, LogOutput: logOutput}
	return l.Load()
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

func requestsChange(set map[string]bool) bool {
	for _, name := range []string{"p", "t", "enable", "auto", "from", "to", "scale", "mode"} {
		if set[name] {
			return true
		}
	}
	return false
}

// mergeConfig layers the preferences file and then the flags that were
// actually given over the current settings.
func mergeConfig(current settings.SystemConfig, prefs *config.Preference, set map[string]bool) (settings.SystemConfig, error) {
	cfg := prefs.ApplyTo(current)
	nl := &cfg.Display.NightLight

	if set["p"] {
		p, err := settings.ParsePreset(*presetArg)
		if err != nil {
			return cfg, err
		}
		*nl = p.Config()
	}

	if set["t"] {
		nl.Temperature = uint32(*tempArg)
	}

	if set["enable"] {
		nl.Enabled = *enablePtr
	}

	if set["auto"] {
		nl.ScheduleAutomatic = *autoPtr
	}

	if set["from"] {
		nl.ScheduleFrom = *fromArg
	}

	if set["to"] {
		nl.ScheduleTo = *toArg
	}

	if set["scale"] {
		cfg.Interface.TextScale = *scaleArg
	}

	if set["mode"] {
		e, err := settings.ParseEffects(*modeArg)
		if err != nil {
			return cfg, err
		}
		cfg.Display.Effects = e
	}

	if set["t"] && *tempArg > uint(settings.MaxTemperature) {
		return cfg, fmt.Errorf("temperature %d out of range [%d, %d]", *tempArg, settings.MinTemperature, settings.MaxTemperature)
	}

	if err := validateRequested(cfg, prefs, set); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// validateRequested checks the fields a flag or the preferences file
// touched. Values that came straight from the store are left alone, as
// the desktop accepts a wider range than we do.
func validateRequested(cfg settings.SystemConfig, prefs *config.Preference, set map[string]bool) error {
	if prefs == nil {
		prefs = &config.Preference{}
	}
	nl := cfg.Display.NightLight

	if set["t"] || set["p"] || prefs.Temperature != nil || prefs.Preset != nil {
		if err := settings.ValidateTemperature(nl.Temperature); err != nil {
			return err
		}
	}

	if set["from"] {
		if err := settings.ValidateHour(nl.ScheduleFrom); err != nil {
			return fmt.Errorf("schedule from: %w", err)
		}
	}

	if set["to"] {
		if err := settings.ValidateHour(nl.ScheduleTo); err != nil {
			return fmt.Errorf("schedule to: %w", err)
		}
	}

	if set["scale"] || prefs.FontScale != nil {
		if err := settings.ValidateTextScale(cfg.Interface.TextScale); err != nil {
			return err
		}
	}

	return nil
}

func printStatus(w io.Writer, c settings.SystemConfig) {
	nl := c.Display.NightLight

	enabled := "off"
	if nl.Enabled {
		enabled = "on"
	}

	fmt.Fprintf(w, "Night light: %s\n", enabled)
	fmt.Fprintf(w, "Temperature: %d K\n", nl.Temperature)
	if nl.ScheduleAutomatic {
		fmt.Fprintln(w, "Schedule:    automatic")
	} else {
		fmt.Fprintf(w, "Schedule:    %s - %s\n", gsettings.FormatFloat(nl.ScheduleFrom), gsettings.FormatFloat(nl.ScheduleTo))
	}
	fmt.Fprintf(w, "Text scale:  %s\n", gsettings.FormatFloat(c.Interface.TextScale))
}
