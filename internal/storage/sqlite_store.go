package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/puffless/internal/logger"
	"github.com/julianstephens/puffless/internal/migration"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/migrations"
)

const onboardedKey = "onboarded"

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'puffless init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	// Databases created by an older build pick up new tables here.
	if _, err := runner.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// GetDB exposes the open connection for diagnostics. Nil before Init or Load.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// MigrationRunner returns a runner over the embedded migrations bound to the open connection.
func (s *SQLiteStore) MigrationRunner() (*migration.Runner, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return s.migrationRunner()
}

func (s *SQLiteStore) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetProfile() (models.UserProfile, error) {
	var p models.UserProfile
	var methodsJSON, targetQuit, createdAt string
	var device, pref string

	err := s.db.QueryRow(`
		SELECT device_type, starting_nicotine_level, starting_puffs_per_day, selected_methods,
			target_quit_date, created_at, notification_preference,
			quiet_hours_start, quiet_hours_end, cost_per_pod, puffs_per_pod
		FROM profile WHERE id = 1`).Scan(
		&device, &p.StartingNicotineLevel, &p.StartingPuffsPerDay, &methodsJSON,
		&targetQuit, &createdAt, &pref,
		&p.QuietHoursStart, &p.QuietHoursEnd, &p.CostPerPod, &p.PuffsPerPod,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	p.DeviceType = models.VapeDeviceType(device)
	p.NotificationPreference = models.NotificationPreference(pref)
	if err := json.Unmarshal([]byte(methodsJSON), &p.SelectedMethods); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to unmarshal selected methods: %w", err)
	}
	if p.TargetQuitDate, err = parseTime(targetQuit); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse target_quit_date: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) SaveProfile(p models.UserProfile) error {
	methodsJSON, err := json.Marshal(p.SelectedMethods)
	if err != nil {
		return fmt.Errorf("failed to marshal selected methods: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO profile (
			id, device_type, starting_nicotine_level, starting_puffs_per_day, selected_methods,
			target_quit_date, created_at, notification_preference,
			quiet_hours_start, quiet_hours_end, cost_per_pod, puffs_per_pod
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			device_type = excluded.device_type,
			starting_nicotine_level = excluded.starting_nicotine_level,
			starting_puffs_per_day = excluded.starting_puffs_per_day,
			selected_methods = excluded.selected_methods,
			target_quit_date = excluded.target_quit_date,
			created_at = excluded.created_at,
			notification_preference = excluded.notification_preference,
			quiet_hours_start = excluded.quiet_hours_start,
			quiet_hours_end = excluded.quiet_hours_end,
			cost_per_pod = excluded.cost_per_pod,
			puffs_per_pod = excluded.puffs_per_pod`,
		string(p.DeviceType), p.StartingNicotineLevel, p.StartingPuffsPerDay, string(methodsJSON),
		formatTime(p.TargetQuitDate), formatTime(p.CreatedAt), string(p.NotificationPreference),
		p.QuietHoursStart, p.QuietHoursEnd, p.CostPerPod, p.PuffsPerPod,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetPlan() (models.QuitPlan, error) {
	var plan models.QuitPlan
	var methodsJSON, start, end, targetsJSON, nicotineJSON string

	err := s.db.QueryRow(`
		SELECT active_methods, start_date, target_end_date, weekly_targets, nicotine_step_down
		FROM quit_plan WHERE id = 1`).Scan(&methodsJSON, &start, &end, &targetsJSON, &nicotineJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuitPlan{}, ErrNotFound
	}
	if err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to get plan: %w", err)
	}

	if err := json.Unmarshal([]byte(methodsJSON), &plan.ActiveMethods); err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to unmarshal active methods: %w", err)
	}
	if err := json.Unmarshal([]byte(targetsJSON), &plan.WeeklyTargets); err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to unmarshal weekly targets: %w", err)
	}
	if err := json.Unmarshal([]byte(nicotineJSON), &plan.NicotineStepDown); err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to unmarshal nicotine step-down: %w", err)
	}
	if plan.StartDate, err = parseTime(start); err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if plan.TargetEndDate, err = parseTime(end); err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to parse target_end_date: %w", err)
	}
	return plan, nil
}

func (s *SQLiteStore) SavePlan(plan models.QuitPlan) error {
	methodsJSON, err := json.Marshal(plan.ActiveMethods)
	if err != nil {
		return fmt.Errorf("failed to marshal active methods: %w", err)
	}
	targetsJSON, err := json.Marshal(plan.WeeklyTargets)
	if err != nil {
		return fmt.Errorf("failed to marshal weekly targets: %w", err)
	}
	nicotineJSON, err := json.Marshal(plan.NicotineStepDown)
	if err != nil {
		return fmt.Errorf("failed to marshal nicotine step-down: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO quit_plan (id, active_methods, start_date, target_end_date, weekly_targets, nicotine_step_down)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			active_methods = excluded.active_methods,
			start_date = excluded.start_date,
			target_end_date = excluded.target_end_date,
			weekly_targets = excluded.weekly_targets,
			nicotine_step_down = excluded.nicotine_step_down`,
		string(methodsJSON), formatTime(plan.StartDate), formatTime(plan.TargetEndDate),
		string(targetsJSON), string(nicotineJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

const dailyLogColumns = `day, puff_count, nicotine_strength, daily_goal, goal_met, mood, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDailyLog(row rowScanner) (models.DailyLog, error) {
	var l models.DailyLog
	err := row.Scan(&l.Date, &l.PuffCount, &l.NicotineStrength, &l.DailyGoal, &l.GoalMet, &l.Mood, &l.Notes)
	return l, err
}

func (s *SQLiteStore) GetDailyLog(day string) (models.DailyLog, error) {
	l, err := scanDailyLog(s.db.QueryRow(`SELECT `+dailyLogColumns+` FROM daily_logs WHERE day = ?`, day))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyLog{}, ErrNotFound
	}
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to get daily log: %w", err)
	}
	return l, nil
}

func (s *SQLiteStore) GetDailyLogs() ([]models.DailyLog, error) {
	rows, err := s.db.Query(`SELECT ` + dailyLogColumns + ` FROM daily_logs ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily logs: %w", err)
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) UpsertDailyLog(l models.DailyLog) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_logs (`+dailyLogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			puff_count = excluded.puff_count,
			nicotine_strength = excluded.nicotine_strength,
			daily_goal = excluded.daily_goal,
			goal_met = excluded.goal_met,
			mood = excluded.mood,
			notes = excluded.notes`,
		l.Date, l.PuffCount, l.NicotineStrength, l.DailyGoal, l.GoalMet, l.Mood, l.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily log: %w", err)
	}
	logger.Debug("Daily log upserted", "day", l.Date, "puffs", l.PuffCount)
	return nil
}

func (s *SQLiteStore) AddCraving(c models.Craving) error {
	var duration sql.NullInt64
	if c.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: int64(*c.DurationMinutes), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO cravings (id, timestamp, intensity, trigger_type, action_taken, duration_minutes, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, formatTime(c.Timestamp), c.Intensity, string(c.Trigger), string(c.Action), duration, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert craving: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCravings() ([]models.Craving, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, intensity, trigger_type, action_taken, duration_minutes, notes
		FROM cravings ORDER BY timestamp ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cravings: %w", err)
	}
	defer rows.Close()

	var cravings []models.Craving
	for rows.Next() {
		var c models.Craving
		var ts, trigger, action string
		var duration sql.NullInt64
		if err := rows.Scan(&c.ID, &ts, &c.Intensity, &trigger, &action, &duration, &c.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan craving: %w", err)
		}
		if c.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("failed to parse craving timestamp: %w", err)
		}
		c.Trigger = models.CravingTrigger(trigger)
		c.Action = models.CravingAction(action)
		if duration.Valid {
			d := int(duration.Int64)
			c.DurationMinutes = &d
		}
		cravings = append(cravings, c)
	}
	return cravings, rows.Err()
}

func (s *SQLiteStore) AddNRTEntry(e models.NRTEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO nrt_entries (id, date, type, dosage_mg, notes)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, formatTime(e.Date), string(e.Type), e.DosageMg, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert nrt entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetNRTEntries() ([]models.NRTEntry, error) {
	rows, err := s.db.Query(`SELECT id, date, type, dosage_mg, notes FROM nrt_entries ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nrt entries: %w", err)
	}
	defer rows.Close()

	var entries []models.NRTEntry
	for rows.Next() {
		var e models.NRTEntry
		var date, typ string
		if err := rows.Scan(&e.ID, &date, &typ, &e.DosageMg, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan nrt entry: %w", err)
		}
		if e.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("failed to parse nrt date: %w", err)
		}
		e.Type = models.NRTType(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) IsOnboarded() (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, onboardedKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get onboarded flag: %w", err)
	}
	return value == "true", nil
}

func (s *SQLiteStore) SetOnboarded(onboarded bool) error {
	value := "false"
	if onboarded {
		value = "true"
	}
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, onboardedKey, value)
	if err != nil {
		return fmt.Errorf("failed to set onboarded flag: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetMilestoneNotification(key string) (models.MilestoneNotification, error) {
	var n models.MilestoneNotification
	var unlockedAt string
	var notifiedAt sql.NullString

	err := s.db.QueryRow(`
		SELECT key, unlocked_at, notified_at FROM milestone_notifications WHERE key = ?`, key).
		Scan(&n.Key, &unlockedAt, &notifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MilestoneNotification{}, ErrNotFound
	}
	if err != nil {
		return models.MilestoneNotification{}, fmt.Errorf("failed to get milestone notification: %w", err)
	}

	if n.UnlockedAt, err = parseTime(unlockedAt); err != nil {
		return models.MilestoneNotification{}, fmt.Errorf("failed to parse unlocked_at: %w", err)
	}
	if notifiedAt.Valid {
		t, err := parseTime(notifiedAt.String)
		if err != nil {
			return models.MilestoneNotification{}, fmt.Errorf("failed to parse notified_at: %w", err)
		}
		n.NotifiedAt = &t
	}
	return n, nil
}

func (s *SQLiteStore) SaveMilestoneNotification(n models.MilestoneNotification) error {
	var notifiedAt sql.NullString
	if n.NotifiedAt != nil {
		notifiedAt = sql.NullString{String: formatTime(*n.NotifiedAt), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO milestone_notifications (key, unlocked_at, notified_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			unlocked_at = excluded.unlocked_at,
			notified_at = excluded.notified_at`,
		n.Key, formatTime(n.UnlockedAt), notifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save milestone notification: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ResetAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"profile", "quit_plan", "daily_logs", "cravings", "nrt_entries", "app_state", "milestone_notifications"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	logger.Info("All data reset", "path", s.path)
	return nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
