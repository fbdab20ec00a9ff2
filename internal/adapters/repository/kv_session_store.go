package repository

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/observability"
)

// Keys of the flat preference map. They match the stores written by the
// mobile app so an exported store can be served as is.
const (
	KeyAge             = "edad"
	KeyHeight          = "estatura"
	KeyWeight          = "peso"
	KeyStepGoal        = "meta_pasos"
	KeyCurrentDate     = "fecha_actual"
	KeyAccumulated     = "pasos_acumulados"
	KeySessionsDone    = "sesiones_realizadas"
	KeyActivityLevel   = "actividad_fisica"
	KeyHealthObjective = "objetivo_salud"
	KeySessionLog      = "sesiones_json"
	KeySettingsUpdated = "ajustes_actualizados"
)

var (
	profileKeys  = []string{KeyAge, KeyHeight, KeyWeight, KeyStepGoal}
	dailyKeys    = []string{KeyCurrentDate, KeyAccumulated, KeySessionsDone}
	settingsKeys = []string{KeyActivityLevel, KeyHealthObjective, KeySettingsUpdated}
	appendKeys   = append([]string{KeySessionLog}, dailyKeys...)
)

var _ domain.SessionStore = (*KVSessionStore)(nil)

// KVSessionStore implements the session store on any key-value substrate.
// The log and the day rollup are rewritten together in one Update, so a
// crash never leaves one without the other.
type KVSessionStore struct {
	kv          domain.KeyValueStore
	codec       domain.SessionCodec
	defaultGoal int
	logger      *log.Logger
}

type KVOption func(*KVSessionStore)

func WithStoreLogger(logger *log.Logger) KVOption {
	return func(s *KVSessionStore) {
		s.logger = logger
	}
}

func WithCodec(codec domain.SessionCodec) KVOption {
	return func(s *KVSessionStore) {
		s.codec = codec
	}
}

func WithDefaultStepGoal(goal int) KVOption {
	return func(s *KVSessionStore) {
		if goal > 0 {
			s.defaultGoal = goal
		}
	}
}

func NewKVSessionStore(kv domain.KeyValueStore, opts ...KVOption) *KVSessionStore {
	s := &KVSessionStore{
		kv:          kv,
		codec:       domain.NewDelimitedCodec(time.Local),
		defaultGoal: domain.DefaultStepGoal,
		logger:      log.New(os.Stdout, "[STORE] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *KVSessionStore) Append(ctx context.Context, session *domain.Session) error {
	err := s.kv.Update(ctx, appendKeys, func(current map[string]string) (map[string]string, error) {
		nextLog, err := s.codec.Append(current[KeySessionLog], session)
		if err != nil {
			return nil, err
		}

		daily := parseDaily(current).With(session)
		return map[string]string{
			KeySessionLog:   nextLog,
			KeyCurrentDate:  daily.Date,
			KeyAccumulated:  strconv.Itoa(daily.AccumulatedSteps),
			KeySessionsDone: strconv.Itoa(daily.SessionsCompleted),
		}, nil
	})
	if err != nil {
		observability.RecordStoreError("append")
		return fmt.Errorf("append session: %w", err)
	}

	observability.RecordSessionStored(session.StepCount, session.Timestamp)
	return nil
}

func (s *KVSessionStore) ReadAll(ctx context.Context) ([]*domain.Session, error) {
	values, err := s.kv.Get(ctx, KeySessionLog)
	if err != nil {
		observability.RecordStoreError("read_all")
		return nil, fmt.Errorf("read session log: %w", err)
	}

	sessions, skipped := s.codec.Decode(values[KeySessionLog])
	for _, rec := range skipped {
		s.logger.Printf("skipping malformed session record: %v", rec)
	}
	observability.RecordMalformedRecords(len(skipped))

	return sessions, nil
}

func (s *KVSessionStore) ReadByPeriod(ctx context.Context, period domain.Period, now time.Time) ([]*domain.Session, error) {
	sessions, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterByPeriod(sessions, period, now), nil
}

func (s *KVSessionStore) ReadDailySnapshot(ctx context.Context) (domain.DailySnapshot, error) {
	values, err := s.kv.Get(ctx, dailyKeys...)
	if err != nil {
		observability.RecordStoreError("read_daily")
		return domain.DailySnapshot{}, fmt.Errorf("read daily snapshot: %w", err)
	}
	return parseDaily(values), nil
}

func (s *KVSessionStore) ReadProfile(ctx context.Context) (domain.UserProfile, error) {
	values, err := s.kv.Get(ctx, profileKeys...)
	if err != nil {
		observability.RecordStoreError("read_profile")
		return domain.UserProfile{}, fmt.Errorf("read profile: %w", err)
	}

	profile := domain.UserProfile{
		Age:           parseInt(values[KeyAge]),
		HeightCm:      parseFloat(values[KeyHeight]),
		WeightKg:      parseFloat(values[KeyWeight]),
		DailyStepGoal: parseInt(values[KeyStepGoal]),
	}
	if profile.DailyStepGoal <= 0 {
		profile.DailyStepGoal = s.defaultGoal
	}
	return profile, nil
}

func (s *KVSessionStore) WriteProfile(ctx context.Context, profile domain.UserProfile) error {
	err := s.kv.Set(ctx, map[string]string{
		KeyAge:      strconv.Itoa(profile.Age),
		KeyHeight:   strconv.FormatFloat(profile.HeightCm, 'f', -1, 64),
		KeyWeight:   strconv.FormatFloat(profile.WeightKg, 'f', -1, 64),
		KeyStepGoal: strconv.Itoa(profile.DailyStepGoal),
	})
	if err != nil {
		observability.RecordStoreError("write_profile")
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func (s *KVSessionStore) ReadHealthSettings(ctx context.Context) (domain.HealthSettings, error) {
	values, err := s.kv.Get(ctx, settingsKeys...)
	if err != nil {
		observability.RecordStoreError("read_settings")
		return domain.HealthSettings{}, fmt.Errorf("read health settings: %w", err)
	}

	settings := domain.DefaultHealthSettings()
	if level, err := domain.ParseActivityLevel(values[KeyActivityLevel]); err == nil {
		settings.ActivityLevel = level
	}
	if objective, err := domain.ParseHealthObjective(values[KeyHealthObjective]); err == nil {
		settings.HealthObjective = objective
	}
	if ts, err := time.Parse(time.RFC3339, values[KeySettingsUpdated]); err == nil {
		settings.UpdatedAt = ts
	}
	return settings, nil
}

func (s *KVSessionStore) WriteHealthSettings(ctx context.Context, settings domain.HealthSettings) error {
	values := map[string]string{
		KeyActivityLevel:   string(settings.ActivityLevel),
		KeyHealthObjective: string(settings.HealthObjective),
	}
	if !settings.UpdatedAt.IsZero() {
		values[KeySettingsUpdated] = settings.UpdatedAt.UTC().Format(time.RFC3339)
	}

	if err := s.kv.Set(ctx, values); err != nil {
		observability.RecordStoreError("write_settings")
		return fmt.Errorf("write health settings: %w", err)
	}
	return nil
}

func parseDaily(values map[string]string) domain.DailySnapshot {
	return domain.DailySnapshot{
		Date:              values[KeyCurrentDate],
		AccumulatedSteps:  parseInt(values[KeyAccumulated]),
		SessionsCompleted: parseInt(values[KeySessionsDone]),
	}
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
