package config

import (
	"fmt"
	"strings"
)

// knownProfiles are the profile names validation accepts without a
// user-profile map; anything else must supply one. internal/keymap
// provides only the Emacs-style default keymap.
var knownProfiles = map[string]bool{
	"emacs":    true,
	"vi":       true,
	"readline": true,
}

// validateKeybindings validates the keybinding profile selection and,
// when present, the user-defined profile's key-string syntax.
func (c *Config) validateKeybindings() error {
	profile := c.Keybindings.Profile
	if !knownProfiles[profile] && len(c.Keybindings.UserProfile) == 0 {
		return &ValidationError{
			Field:   "keybindings.profile",
			Value:   profile,
			Message: "must be one of: emacs, vi, readline, or provide keybindings.user-profile",
		}
	}
	for action, keyStr := range c.Keybindings.UserProfile {
		if err := parseKeyBinding(keyStr); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("keybindings.user-profile.%s", action),
				Value:   keyStr,
				Message: err.Error(),
			}
		}
	}
	return nil
}

// parseKeyBinding validates a key-string such as "C-x", "M-x", "^X", or
// a chord like "C-x C-f" (spec §3 KeyCode / §11.1 profiles).
func parseKeyBinding(keyStr string) error {
	s := strings.TrimSpace(keyStr)
	if s == "" {
		return fmt.Errorf("empty key binding")
	}
	for _, chord := range strings.Fields(s) {
		if !validChord(chord) {
			return fmt.Errorf("unsupported key binding chord: %q (expected forms like 'C-x', 'M-x', '^X')", chord)
		}
	}
	return nil
}

func validChord(chord string) bool {
	if strings.HasPrefix(chord, "^") && len(chord) == 2 {
		return true
	}
	lower := strings.ToLower(chord)
	if (strings.HasPrefix(lower, "c-") || strings.HasPrefix(lower, "m-") || strings.HasPrefix(lower, "s-")) && len(chord) >= 3 {
		return true
	}
	return len(chord) >= 1
}
