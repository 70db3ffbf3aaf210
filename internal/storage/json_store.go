package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/puffless/internal/models"
)

// Keys of the JSON document. Each holds one serialized value.
const (
	keyProfile                = "puffless_profile"
	keyPlan                   = "puffless_plan"
	keyDailyLogs              = "puffless_daily_logs"
	keyCravings               = "puffless_cravings"
	keyNRTEntries             = "puffless_nrt_entries"
	keyOnboarded              = "puffless_onboarded"
	keyMilestoneNotifications = "puffless_milestone_notifications"
)

// JSONStore keeps every record in a single key-value JSON file.
type JSONStore struct {
	path   string
	values map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.values = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'puffless init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.values = make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &s.values); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save writes to a temp file and renames it over the store.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// get decodes the value under key into v, returning ErrNotFound when absent.
func (s *JSONStore) get(key string, v any) error {
	if s.values == nil {
		return fmt.Errorf("storage not loaded")
	}
	raw, ok := s.values[key]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *JSONStore) set(key string, v any) error {
	if s.values == nil {
		return fmt.Errorf("storage not loaded")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.values[key] = raw
	return s.save()
}

// getList is get for slice values, where absence means empty.
func getList[T any](s *JSONStore, key string) ([]T, error) {
	var items []T
	if err := s.get(key, &items); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return items, nil
}

func (s *JSONStore) GetProfile() (models.UserProfile, error) {
	var p models.UserProfile
	err := s.get(keyProfile, &p)
	return p, err
}

func (s *JSONStore) SaveProfile(p models.UserProfile) error {
	return s.set(keyProfile, p)
}

func (s *JSONStore) GetPlan() (models.QuitPlan, error) {
	var plan models.QuitPlan
	err := s.get(keyPlan, &plan)
	return plan, err
}

func (s *JSONStore) SavePlan(plan models.QuitPlan) error {
	return s.set(keyPlan, plan)
}

func (s *JSONStore) GetDailyLog(day string) (models.DailyLog, error) {
	logs, err := getList[models.DailyLog](s, keyDailyLogs)
	if err != nil {
		return models.DailyLog{}, err
	}
	for _, l := range logs {
		if l.Date == day {
			return l, nil
		}
	}
	return models.DailyLog{}, ErrNotFound
}

func (s *JSONStore) GetDailyLogs() ([]models.DailyLog, error) {
	logs, err := getList[models.DailyLog](s, keyDailyLogs)
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	return logs, nil
}

func (s *JSONStore) UpsertDailyLog(l models.DailyLog) error {
	logs, err := getList[models.DailyLog](s, keyDailyLogs)
	if err != nil {
		return err
	}
	replaced := false
	for i := range logs {
		if logs[i].Date == l.Date {
			logs[i] = l
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, l)
	}
	return s.set(keyDailyLogs, logs)
}

func (s *JSONStore) AddCraving(c models.Craving) error {
	cravings, err := getList[models.Craving](s, keyCravings)
	if err != nil {
		return err
	}
	return s.set(keyCravings, append(cravings, c))
}

func (s *JSONStore) GetCravings() ([]models.Craving, error) {
	cravings, err := getList[models.Craving](s, keyCravings)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cravings, func(i, j int) bool { return cravings[i].Timestamp.Before(cravings[j].Timestamp) })
	return cravings, nil
}

func (s *JSONStore) AddNRTEntry(e models.NRTEntry) error {
	entries, err := getList[models.NRTEntry](s, keyNRTEntries)
	if err != nil {
		return err
	}
	return s.set(keyNRTEntries, append(entries, e))
}

func (s *JSONStore) GetNRTEntries() ([]models.NRTEntry, error) {
	entries, err := getList[models.NRTEntry](s, keyNRTEntries)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

func (s *JSONStore) IsOnboarded() (bool, error) {
	var onboarded bool
	if err := s.get(keyOnboarded, &onboarded); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return onboarded, nil
}

func (s *JSONStore) SetOnboarded(onboarded bool) error {
	return s.set(keyOnboarded, onboarded)
}

func (s *JSONStore) GetMilestoneNotification(key string) (models.MilestoneNotification, error) {
	var notifications map[string]models.MilestoneNotification
	if err := s.get(keyMilestoneNotifications, &notifications); err != nil {
		return models.MilestoneNotification{}, err
	}
	n, ok := notifications[key]
	if !ok {
		return models.MilestoneNotification{}, ErrNotFound
	}
	return n, nil
}

func (s *JSONStore) SaveMilestoneNotification(n models.MilestoneNotification) error {
	notifications := make(map[string]models.MilestoneNotification)
	if err := s.get(keyMilestoneNotifications, &notifications); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	notifications[n.Key] = n
	return s.set(keyMilestoneNotifications, notifications)
}

func (s *JSONStore) ResetAll() error {
	if s.values == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.values = make(map[string]json.RawMessage)
	return s.save()
}
