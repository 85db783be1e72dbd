package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/scoring"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

// Storage keys, before the prefix is applied.
const (
	KeyHistory         = "mindscan_history_v2"
	KeyProfile         = "mindscan_profile_v1"
	KeyHabits          = "mindscan_habits_v1"
	KeyReminderEnabled = "mindscan_reminder_enabled"
	KeyTheme           = "mindscan_theme"

	// UnreadableSuffix names the key that keeps a value which could not be
	// parsed at all once it is about to be overwritten.
	UnreadableSuffix = "_unreadable"
)

// legacyStrategy is assumed for entries written before strategies were named.
const legacyStrategy = scoring.DASSLifestyleV2

// Store reads and writes typed records. Missing or corrupt values read as
// their empty default; only backend failures are returned as errors.
type Store struct {
	kv     KV
	prefix string
	log    logger.Logger
}

// NewStore wraps kv.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, prefix: DefaultPrefix, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the full backend key for name.
func (s *Store) Key(name string) string { return s.prefix + name }

// Close closes the backend.
func (s *Store) Close() error { return s.kv.Close() }

// read returns the raw value, or nil with no error when the key is missing.
func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	b, err := s.kv.Get(ctx, s.Key(name))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

func (s *Store) writeJSON(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, s.Key(name), b); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// keepUnreadable copies a value that could not be parsed at all to
// name+UnreadableSuffix before it is replaced. blob may be nil.
func (s *Store) keepUnreadable(ctx context.Context, name string, blob []byte) error {
	if blob == nil {
		return nil
	}
	if err := s.kv.Set(ctx, s.Key(name+UnreadableSuffix), blob); err != nil {
		return fmt.Errorf("write %s%s: %w", name, UnreadableSuffix, err)
	}
	s.log.Warn(ctx, "unreadable value moved aside",
		logger.String("key", s.Key(name)),
		logger.String("backup", s.Key(name+UnreadableSuffix)),
	)
	return nil
}

func (s *Store) corrupt(ctx context.Context, name string, err error) {
	metrics.RecordCorruptValue(name)
	s.log.Warn(ctx, "stored value is corrupt; using default",
		logger.String("key", s.Key(name)),
		logger.Error(err),
	)
}

// storedEntry accepts both the current entry shape and the older one that
// kept the label text and per-axis fields at the top level.
type storedEntry struct {
	model.HistoryEntry
	Risk          *model.RiskLevel `json:"risk"`
	Label         string           `json:"label"`
	MD            *float64         `json:"MD"`
	AN            *float64         `json:"AN"`
	ST            *float64         `json:"ST"`
	LegacySymptom *float64         `json:"symptomIndex"`
}

func (e storedEntry) normalize(index int) (model.HistoryEntry, error) {
	out := e.HistoryEntry
	switch {
	case e.Risk != nil:
		out.Risk = *e.Risk
	case e.Label != "":
		r, err := model.ParseRisk(e.Label)
		if err != nil {
			return out, err
		}
		out.Risk = r
	default:
		return out, errors.New("entry has no risk label")
	}
	if out.Strategy == "" {
		out.Strategy = legacyStrategy
	}
	if out.ID == "" {
		out.ID = "legacy-" + strconv.Itoa(index)
	}
	if e.LegacySymptom != nil {
		out.SymptomIndex = *e.LegacySymptom
	}
	if out.Axes == nil && e.MD != nil && e.AN != nil && e.ST != nil {
		out.Axes = map[model.Axis]float64{
			model.AxisMood:    *e.MD,
			model.AxisAnxiety: *e.AN,
			model.AxisStress:  *e.ST,
		}
	}

	if err := model.ValidateDate(out.Date); err != nil {
		return out, err
	}
	scale := scoring.ScaleFor(out.Strategy)
	if out.Wellness < 0 || out.Wellness > scale.Max || out.SymptomIndex < 0 || out.SymptomIndex > scale.Max {
		return out, fmt.Errorf("score out of range [0, %g]", scale.Max)
	}
	return out, nil
}

// historyDoc is the decoded history plus the stored elements that could not
// be decoded. Undecoded elements keep their position so that writing the
// document back never drops them.
type historyDoc struct {
	entries []model.HistoryEntry
	slots   []historySlot
	blob    []byte // whole value, set when it is not a JSON array
}

type historySlot struct {
	entry int             // index into entries, or -1
	raw   json.RawMessage // original bytes when entry is -1
}

func (s *Store) loadHistory(ctx context.Context) (historyDoc, error) {
	doc := historyDoc{entries: []model.HistoryEntry{}}
	b, err := s.read(ctx, KeyHistory)
	if err != nil || b == nil {
		return doc, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		s.corrupt(ctx, KeyHistory, err)
		doc.blob = b
		return doc, nil
	}
	doc.slots = make([]historySlot, 0, len(raw))
	for i, r := range raw {
		e, err := decodeEntry(r, i)
		if err != nil {
			s.corrupt(ctx, KeyHistory, fmt.Errorf("entry %d: %w", i, err))
			doc.slots = append(doc.slots, historySlot{entry: -1, raw: r})
			continue
		}
		doc.slots = append(doc.slots, historySlot{entry: len(doc.entries)})
		doc.entries = append(doc.entries, e)
	}
	return doc, nil
}

func decodeEntry(r json.RawMessage, index int) (model.HistoryEntry, error) {
	var se storedEntry
	if err := json.Unmarshal(r, &se); err != nil {
		return model.HistoryEntry{}, err
	}
	return se.normalize(index)
}

// elements returns the document in stored order, undecoded elements as they
// were read.
func (d historyDoc) elements() []any {
	out := make([]any, 0, len(d.slots))
	for _, sl := range d.slots {
		if sl.entry < 0 {
			out = append(out, sl.raw)
			continue
		}
		out = append(out, d.entries[sl.entry])
	}
	return out
}

// History returns all entries in insertion order. Entries that cannot be
// decoded are left out of the result but stay in storage.
func (s *Store) History(ctx context.Context) ([]model.HistoryEntry, error) {
	doc, err := s.loadHistory(ctx)
	return doc.entries, err
}

// SaveHistory replaces the stored history.
func (s *Store) SaveHistory(ctx context.Context, history []model.HistoryEntry) error {
	if history == nil {
		history = []model.HistoryEntry{}
	}
	return s.writeJSON(ctx, KeyHistory, history)
}

// AppendHistory loads, appends and saves. Stored elements that cannot be
// decoded are written back unchanged. Callers serialize concurrent use.
func (s *Store) AppendHistory(ctx context.Context, e model.HistoryEntry) ([]model.HistoryEntry, error) {
	doc, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.keepUnreadable(ctx, KeyHistory, doc.blob); err != nil {
		return nil, err
	}
	doc.slots = append(doc.slots, historySlot{entry: len(doc.entries)})
	doc.entries = append(doc.entries, e)
	if err := s.writeJSON(ctx, KeyHistory, doc.elements()); err != nil {
		return nil, err
	}
	return doc.entries, nil
}

// ClearHistory removes every entry.
func (s *Store) ClearHistory(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.Key(KeyHistory)); err != nil {
		return fmt.Errorf("clear %s: %w", KeyHistory, err)
	}
	return nil
}

// Profile returns the saved profile or the empty profile.
func (s *Store) Profile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	b, err := s.read(ctx, KeyProfile)
	if err != nil || b == nil {
		return p, err
	}
	if err := json.Unmarshal(b, &p); err != nil {
		s.corrupt(ctx, KeyProfile, err)
		return model.Profile{}, nil
	}
	return p, nil
}

// SaveProfile replaces the stored profile.
func (s *Store) SaveProfile(ctx context.Context, p model.Profile) error {
	return s.writeJSON(ctx, KeyProfile, p)
}

// habitDoc is the decoded habit log plus the stored days that could not be
// decoded, kept so that writing the log back never drops them.
type habitDoc struct {
	log  model.HabitLog
	kept map[string]json.RawMessage
	blob []byte // whole value, set when it is not a JSON object
}

func (s *Store) loadHabits(ctx context.Context) (habitDoc, error) {
	doc := habitDoc{log: model.HabitLog{}, kept: map[string]json.RawMessage{}}
	b, err := s.read(ctx, KeyHabits)
	if err != nil || b == nil {
		return doc, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		s.corrupt(ctx, KeyHabits, err)
		doc.blob = b
		return doc, nil
	}
	for date, r := range raw {
		var done map[model.Habit]bool
		if err := json.Unmarshal(r, &done); err != nil {
			s.corrupt(ctx, KeyHabits, fmt.Errorf("day %q: %w", date, err))
			doc.kept[date] = r
			continue
		}
		if err := (model.HabitRecord{Date: date, Done: done}).Validate(); err != nil {
			s.corrupt(ctx, KeyHabits, err)
			doc.kept[date] = r
			continue
		}
		if done == nil {
			done = map[model.Habit]bool{}
		}
		doc.log[date] = done
	}
	return doc, nil
}

// Habits returns the per-day habit log. Days with unknown habits or
// malformed dates are left out of the result but stay in storage.
func (s *Store) Habits(ctx context.Context) (model.HabitLog, error) {
	doc, err := s.loadHabits(ctx)
	return doc.log, err
}

// SaveHabits replaces the stored habit log.
func (s *Store) SaveHabits(ctx context.Context, log model.HabitLog) error {
	if log == nil {
		log = model.HabitLog{}
	}
	return s.writeJSON(ctx, KeyHabits, log)
}

// PutHabits validates rec and overwrites that day's record. Other stored
// days that cannot be decoded are written back unchanged.
func (s *Store) PutHabits(ctx context.Context, rec model.HabitRecord) (model.HabitLog, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	doc, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.keepUnreadable(ctx, KeyHabits, doc.blob); err != nil {
		return nil, err
	}
	done := make(map[model.Habit]bool, len(rec.Done))
	for h, v := range rec.Done {
		done[h] = v
	}
	doc.log[rec.Date] = done
	delete(doc.kept, rec.Date)

	out := make(map[string]any, len(doc.log)+len(doc.kept))
	for date, r := range doc.kept {
		out[date] = r
	}
	for date, d := range doc.log {
		out[date] = d
	}
	if err := s.writeJSON(ctx, KeyHabits, out); err != nil {
		return nil, err
	}
	return doc.log, nil
}

// Settings returns the reminder flag and theme. The theme defaults to dark.
func (s *Store) Settings(ctx context.Context) (model.Settings, error) {
	st := model.Settings{Theme: model.ThemeDark}

	b, err := s.read(ctx, KeyReminderEnabled)
	if err != nil {
		return st, err
	}
	if b != nil {
		v, perr := strconv.ParseBool(string(b))
		if perr != nil {
			s.corrupt(ctx, KeyReminderEnabled, perr)
		}
		st.ReminderEnabled = v
	}

	b, err = s.read(ctx, KeyTheme)
	if err != nil {
		return st, err
	}
	if b != nil {
		t := model.Settings{Theme: model.Theme(b)}
		if verr := t.Validate(); verr != nil || t.Theme == "" {
			s.corrupt(ctx, KeyTheme, fmt.Errorf("theme %q: %w", b, model.ErrInvalidTheme))
		} else {
			st.Theme = t.Theme
		}
	}
	return st, nil
}

// SaveSettings stores both settings keys.
func (s *Store) SaveSettings(ctx context.Context, st model.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if st.Theme == "" {
		st.Theme = model.ThemeDark
	}
	if err := s.kv.Set(ctx, s.Key(KeyReminderEnabled), []byte(strconv.FormatBool(st.ReminderEnabled))); err != nil {
		return fmt.Errorf("write %s: %w", KeyReminderEnabled, err)
	}
	if err := s.kv.Set(ctx, s.Key(KeyTheme), []byte(st.Theme)); err != nil {
		return fmt.Errorf("write %s: %w", KeyTheme, err)
	}
	return nil
}
