package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to qualipro! Let's configure the site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Public URL.
	basePrompt := promptui.Prompt{
		Label:    "Public base URL",
		Default:  cfg.BaseURL,
		Validate: checkAbsoluteURL,
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Mode.
	modePrompt := promptui.Select{
		Label: "Select mode",
		Items: []string{
			"production  - generic error pages, no live reload",
			"development - stack traces on error pages, live reload",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Dev = modeIdx == 1

	if cfg.Dev {
		contentPrompt := promptui.Prompt{
			Label:   "Content file to watch (leave blank for the built-in copy)",
			Default: "",
		}
		cfg.ContentFile, err = contentPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("content file: %w", err)
		}
	}

	// 4. Export directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static export",
		Default: cfg.OutputDir,
	}
	cfg.OutputDir, err = outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra public asset exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)

	// 6. Intro video.
	videoPrompt := promptui.Prompt{
		Label:   "Intro video URL (leave blank for the built-in one)",
		Default: "",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			return checkAbsoluteURL(s)
		},
	}
	cfg.IntroVideoURL, err = videoPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("intro video: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
