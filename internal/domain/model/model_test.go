package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/mindscan/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRiskLevel(t *testing.T) {
	convey.Convey("Given the risk levels", t, func() {
		convey.Convey("Then they are ordered by favorability", func() {
			convey.So(int(model.RiskHigh), convey.ShouldBeLessThan, int(model.RiskModerate))
			convey.So(int(model.RiskModerate), convey.ShouldBeLessThan, int(model.RiskLow))
		})

		convey.Convey("When marshaled to JSON", func() {
			b, err := json.Marshal(map[string]model.RiskLevel{"risk": model.RiskModerate})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, `{"risk":"yellow"}`)

			convey.Convey("Then it decodes back to the same level", func() {
				var out map[string]model.RiskLevel
				convey.So(json.Unmarshal(b, &out), convey.ShouldBeNil)
				convey.So(out["risk"], convey.ShouldEqual, model.RiskModerate)
			})
		})

		convey.Convey("When parsing a legacy title", func() {
			r, err := model.ParseRisk("Green – doing okay")
			convey.So(err, convey.ShouldBeNil)
			convey.So(r, convey.ShouldEqual, model.RiskLow)
		})

		convey.Convey("When parsing garbage", func() {
			_, err := model.ParseRisk("purple")
			convey.So(errors.Is(err, model.ErrUnknownRisk), convey.ShouldBeTrue)
		})
	})
}

func TestScale(t *testing.T) {
	convey.Convey("Given a 0-12 scale", t, func() {
		s := model.Scale{Max: 12, HighRiskBelow: 4, ModerateBelow: 8, BandMedium: 4, BandHigh: 8}

		convey.Convey("Then classification follows the thresholds", func() {
			convey.So(s.Classify(0), convey.ShouldEqual, model.RiskHigh)
			convey.So(s.Classify(3.99), convey.ShouldEqual, model.RiskHigh)
			convey.So(s.Classify(4), convey.ShouldEqual, model.RiskModerate)
			convey.So(s.Classify(7.99), convey.ShouldEqual, model.RiskModerate)
			convey.So(s.Classify(8), convey.ShouldEqual, model.RiskLow)
			convey.So(s.Classify(12), convey.ShouldEqual, model.RiskLow)
		})

		convey.Convey("Then bands follow the symptom thresholds", func() {
			convey.So(s.Band(8), convey.ShouldEqual, model.BandHigh)
			convey.So(s.Band(4), convey.ShouldEqual, model.BandMedium)
			convey.So(s.Band(3.9), convey.ShouldEqual, model.BandLow)
		})

		convey.Convey("Then clamping keeps values in range", func() {
			convey.So(s.Clamp(-1), convey.ShouldEqual, 0)
			convey.So(s.Clamp(13), convey.ShouldEqual, 12)
		})
	})
}

func TestHistoryEntry(t *testing.T) {
	convey.Convey("Given a score result and lifestyle answers", t, func() {
		r := model.ScoreResult{
			Strategy:     "dass-lifestyle-v2",
			Wellness:     9,
			Max:          12,
			SymptomIndex: 3,
			Risk:         model.RiskLow,
			Axes:         map[model.Axis]float64{model.AxisMood: 3},
		}
		answers := model.Answers{"q1": 1, "sleep": 3, "screen": 2}

		e := model.NewHistoryEntry("id-1", "2026-10-01", r, answers)

		convey.Convey("Then only lifestyle answers are copied", func() {
			convey.So(e.Lifestyle, convey.ShouldResemble, map[string]int{"sleep": 3, "screen": 2})
		})

		convey.Convey("Then the axes are copied, not shared", func() {
			r.Axes[model.AxisMood] = 11
			convey.So(e.Axes[model.AxisMood], convey.ShouldEqual, 3)
		})

		convey.Convey("Then the entry rebuilds its result", func() {
			back := e.Result(12)
			convey.So(back.Wellness, convey.ShouldEqual, 9)
			convey.So(back.Label, convey.ShouldEqual, "Green – doing okay")
		})
	})
}

func TestHabitRecord(t *testing.T) {
	convey.Convey("Given habit records", t, func() {
		convey.Convey("When a record uses a known habit", func() {
			r := model.HabitRecord{Date: "2026-10-01", Done: map[model.Habit]bool{model.HabitWater: true, model.HabitMove: false}}
			convey.So(r.Validate(), convey.ShouldBeNil)
			convey.So(r.Completed(), convey.ShouldEqual, 1)
		})

		convey.Convey("When a record uses an unknown habit", func() {
			r := model.HabitRecord{Date: "2026-10-01", Done: map[model.Habit]bool{"juggling": true}}
			convey.So(errors.Is(r.Validate(), model.ErrUnknownHabit), convey.ShouldBeTrue)
		})

		convey.Convey("When a record has a malformed date", func() {
			r := model.HabitRecord{Date: "01/10/2026"}
			convey.So(errors.Is(r.Validate(), model.ErrInvalidDate), convey.ShouldBeTrue)
		})

		convey.Convey("When a log is listed", func() {
			log := model.HabitLog{
				"2026-10-03": {model.HabitSleep: true},
				"2026-10-01": {model.HabitWater: true},
			}
			recs := log.Records()
			convey.So(len(recs), convey.ShouldEqual, 2)
			convey.So(recs[0].Date, convey.ShouldEqual, "2026-10-01")
		})
	})
}

func TestProfileAndSettings(t *testing.T) {
	convey.Convey("Given a profile", t, func() {
		convey.So(model.Profile{Name: "Sam", Age: "21"}.Validate(), convey.ShouldEqual, model.ErrIncompleteProfile)
		convey.So(model.Profile{Name: "Sam", Age: "21", Gender: "x"}.Validate(), convey.ShouldBeNil)
		convey.So(model.Profile{}.Empty(), convey.ShouldBeTrue)
	})

	convey.Convey("Given settings", t, func() {
		convey.So(model.Settings{Theme: "neon"}.Validate(), convey.ShouldEqual, model.ErrInvalidTheme)
		convey.So(model.Settings{Theme: model.ThemeLight}.Validate(), convey.ShouldBeNil)
	})
}
