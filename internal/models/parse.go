package models

import (
	"fmt"
	"strings"
)

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(s)
}

// parseEnum matches s against all variants, ignoring case and accepting
// slug forms such as "after-meal" or "mod_tank".
func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	want := normalizeEnum(s)
	for _, v := range all {
		if normalizeEnum(string(v)) == want {
			return v, nil
		}
	}
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (valid: %s)", kind, s, strings.Join(names, ", "))
}

func ParseDeviceType(s string) (VapeDeviceType, error) {
	return parseEnum("device type", s, DeviceTypes)
}

func ParseQuitMethod(s string) (QuitMethod, error) {
	return parseEnum("quit method", s, QuitMethods)
}

func ParseNotificationPreference(s string) (NotificationPreference, error) {
	// Short names used by the CLI
	switch normalizeEnum(s) {
	case "often":
		return NotifyOften, nil
	case "balanced", "essentials":
		return NotifyBalanced, nil
	case "milestones":
		return NotifyMilestonesOnly, nil
	}
	return parseEnum("notification preference", s, NotificationPreferences)
}

func ParseCravingTrigger(s string) (CravingTrigger, error) {
	return parseEnum("trigger", s, CravingTriggers)
}

func ParseCravingAction(s string) (CravingAction, error) {
	switch normalizeEnum(s) {
	case "nrt":
		return ActionUsedNRT, nil
	case "breathing":
		return ActionBreathingExercise, nil
	}
	return parseEnum("action", s, CravingActions)
}

func ParseNRTType(s string) (NRTType, error) {
	return parseEnum("NRT type", s, NRTTypes)
}
