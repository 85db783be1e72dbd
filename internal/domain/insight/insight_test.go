package insight_test

import (
	"testing"

	"github.com/okian/mindscan/internal/domain/insight"
	"github.com/okian/mindscan/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var dassScale = model.Scale{Max: 12, HighRiskBelow: 4, ModerateBelow: 8, BandMedium: 4, BandHigh: 8}

func withSymptoms(values ...float64) []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(values))
	for i, v := range values {
		out[i] = model.HistoryEntry{Date: "2026-10-01", SymptomIndex: v, Wellness: 12 - v}
	}
	return out
}

func withWellness(values ...float64) []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(values))
	for i, v := range values {
		out[i] = model.HistoryEntry{Date: "2026-10-01", Wellness: v, SymptomIndex: 12 - v}
	}
	return out
}

func TestClassify(t *testing.T) {
	Convey("Given results with axes", t, func() {
		Convey("When stress dominates", func() {
			p := insight.Classify(model.ScoreResult{Axes: map[model.Axis]float64{model.AxisMood: 2, model.AxisAnxiety: 3, model.AxisStress: 7}})
			So(p.Axis, ShouldEqual, model.AxisStress)
			So(p.Title, ShouldEqual, "Overload / tension pattern")
		})

		Convey("When anxiety and stress tie", func() {
			p := insight.Classify(model.ScoreResult{Axes: map[model.Axis]float64{model.AxisMood: 1, model.AxisAnxiety: 6, model.AxisStress: 6}})
			So(p.Axis, ShouldEqual, model.AxisAnxiety)
		})

		Convey("When all axes tie", func() {
			p := insight.Classify(model.ScoreResult{Axes: map[model.Axis]float64{model.AxisMood: 0, model.AxisAnxiety: 0, model.AxisStress: 0}})
			So(p.Axis, ShouldEqual, model.AxisMood)
			So(p.Title, ShouldEqual, "Low mood pattern")
		})

		Convey("When the result has no axes", func() {
			p := insight.Classify(model.ScoreResult{Wellness: 10})
			So(p.Axis, ShouldEqual, model.Axis(""))
			So(p.Title, ShouldEqual, insight.BalancedTitle)
		})
	})
}

func TestTrend(t *testing.T) {
	Convey("Given a default engine", t, func() {
		e := insight.New(dassScale)

		Convey("When the history is empty", func() {
			tr := e.Trend(nil)
			So(tr.Sufficient, ShouldBeFalse)
			So(tr.Text, ShouldEqual, insight.TrendInsufficientText)
		})

		Convey("When only three points exist", func() {
			So(e.Trend(withSymptoms(1, 2, 3)).Sufficient, ShouldBeFalse)
		})

		Convey("When symptoms go from [2,2] to [6,6]", func() {
			tr := e.Trend(withSymptoms(2, 2, 6, 6))
			So(tr.Sufficient, ShouldBeTrue)
			So(tr.EarlierMean, ShouldEqual, 2)
			So(tr.LaterMean, ShouldEqual, 6)
			So(tr.Delta, ShouldEqual, 4)
			So(tr.Direction, ShouldEqual, insight.DirectionWorsening)
			So(tr.Text, ShouldEqual, insight.TrendWorseningText)
		})

		Convey("When symptoms fall", func() {
			tr := e.Trend(withSymptoms(8, 7, 6, 3, 2))
			So(tr.Direction, ShouldEqual, insight.DirectionImproving)
		})

		Convey("When the change is within the threshold", func() {
			tr := e.Trend(withSymptoms(4, 4, 5, 5))
			So(tr.Direction, ShouldEqual, insight.DirectionStable)
		})

		Convey("When more than seven entries exist", func() {
			tr := e.Trend(withSymptoms(11, 11, 11, 2, 2, 2, 2, 2, 2, 2))
			Convey("Then only the last seven are used", func() {
				So(tr.Points, ShouldEqual, 7)
				So(tr.Direction, ShouldEqual, insight.DirectionStable)
			})
		})

		Convey("When the input is reused", func() {
			h := withSymptoms(2, 2, 6, 6)
			_ = e.Trend(h)
			So(h[0].SymptomIndex, ShouldEqual, 2)
			So(len(h), ShouldEqual, 4)
		})
	})
}

func TestPredict(t *testing.T) {
	Convey("Given a default engine", t, func() {
		e := insight.New(dassScale)

		Convey("When fewer than three scans exist", func() {
			p := e.Predict(withWellness(5, 6))
			So(p.Sufficient, ShouldBeFalse)
			So(p.Risk, ShouldBeNil)
			So(p.Text, ShouldEqual, insight.PredictionInsufficientText)
		})

		Convey("When the last three scores are 5, 6, 8", func() {
			p := e.Predict(withWellness(1, 5, 6, 8))
			Convey("Then the prediction is 8 + 0.6*3", func() {
				So(p.Sufficient, ShouldBeTrue)
				So(p.Value, ShouldAlmostEqual, 9.8, 1e-9)
				So(*p.Risk, ShouldEqual, model.RiskLow)
				So(p.Direction, ShouldEqual, insight.DirectionImproving)
				So(p.Text, ShouldEqual, insight.PredictionLighterText)
			})
		})

		Convey("When the extrapolation overshoots", func() {
			p := e.Predict(withWellness(4, 8, 12))
			So(p.Value, ShouldEqual, 12)
		})

		Convey("When scores drop", func() {
			p := e.Predict(withWellness(9, 7, 5))
			So(p.Value, ShouldAlmostEqual, 2.6, 1e-9)
			So(*p.Risk, ShouldEqual, model.RiskHigh)
			So(p.Text, ShouldEqual, insight.PredictionHeavierText)
		})

		Convey("When scores barely move", func() {
			p := e.Predict(withWellness(6, 6.5, 6.5))
			So(p.Direction, ShouldEqual, insight.DirectionStable)
			So(*p.Risk, ShouldEqual, model.RiskModerate)
		})
	})
}

func TestHabitImpacts(t *testing.T) {
	Convey("Given habit records on four days", t, func() {
		e := insight.New(dassScale)
		history := []model.HistoryEntry{
			{Date: "2026-10-01", Wellness: 9},
			{Date: "2026-10-02", Wellness: 10},
			{Date: "2026-10-03", Wellness: 4},
			{Date: "2026-10-04", Wellness: 5},
			{Date: "2026-10-05", Wellness: 1},
		}
		habits := []model.HabitRecord{
			{Date: "2026-10-01", Done: map[model.Habit]bool{model.HabitWater: true, model.HabitScreen: false, model.HabitMove: true}},
			{Date: "2026-10-02", Done: map[model.Habit]bool{model.HabitWater: true, model.HabitScreen: false, model.HabitMove: true}},
			{Date: "2026-10-03", Done: map[model.Habit]bool{model.HabitWater: false, model.HabitScreen: true, model.HabitMove: true}},
			{Date: "2026-10-04", Done: map[model.Habit]bool{model.HabitWater: false, model.HabitScreen: true}},
		}

		impacts := e.HabitImpacts(history, habits)
		byHabit := map[model.Habit]insight.HabitImpact{}
		for _, hi := range impacts {
			byHabit[hi.Habit] = hi
		}

		Convey("Then every tracked habit is reported", func() {
			So(len(impacts), ShouldEqual, len(model.Habits))
		})

		Convey("Then water shows a positive impact of 5 points", func() {
			w := byHabit[model.HabitWater]
			So(w.Impact, ShouldEqual, insight.ImpactPositive)
			So(w.DoneMean, ShouldEqual, 9.5)
			So(w.NotDoneMean, ShouldEqual, 4.5)
			So(w.Diff, ShouldEqual, 5)
		})

		Convey("Then the mirror habit is reported as negative", func() {
			So(byHabit[model.HabitScreen].Impact, ShouldEqual, insight.ImpactNegative)
		})

		Convey("Then a habit done on three of four days lacks a comparison group", func() {
			m := byHabit[model.HabitMove]
			So(m.Impact, ShouldEqual, insight.ImpactInsufficient)
			So(m.DoneCount, ShouldEqual, 3)
			So(m.NotDone, ShouldEqual, 1)
		})

		Convey("Then the day without a record is ignored", func() {
			So(byHabit[model.HabitWater].DoneCount+byHabit[model.HabitWater].NotDone, ShouldEqual, 4)
		})
	})

	Convey("Given nearly equal groups", t, func() {
		e := insight.New(dassScale)
		history := []model.HistoryEntry{
			{Date: "2026-10-01", Wellness: 6}, {Date: "2026-10-02", Wellness: 7},
			{Date: "2026-10-03", Wellness: 6.5}, {Date: "2026-10-04", Wellness: 6},
		}
		habits := []model.HabitRecord{
			{Date: "2026-10-01", Done: map[model.Habit]bool{model.HabitSleep: true}},
			{Date: "2026-10-02", Done: map[model.Habit]bool{model.HabitSleep: true}},
			{Date: "2026-10-03", Done: map[model.Habit]bool{}},
			{Date: "2026-10-04", Done: map[model.Habit]bool{}},
		}
		impacts := e.HabitImpacts(history, habits)
		So(impacts[0].Habit, ShouldEqual, model.HabitSleep)
		So(impacts[0].Impact, ShouldEqual, insight.ImpactInconclusive)
	})
}

func TestDerive(t *testing.T) {
	Convey("Given an empty history", t, func() {
		e := insight.New(dassScale)
		current := model.ScoreResult{Wellness: 10, SymptomIndex: 2, Axes: map[model.Axis]float64{model.AxisMood: 2}}

		So(func() { e.Derive(current, nil, nil) }, ShouldNotPanic)
		in := e.Derive(current, nil, nil)

		Convey("Then trend and prediction report insufficient data", func() {
			So(in.Trend.Text, ShouldEqual, insight.TrendInsufficientText)
			So(in.Prediction.Text, ShouldEqual, insight.PredictionInsufficientText)
			So(in.Band, ShouldEqual, model.BandLow)
			So(in.Progress.XP, ShouldEqual, 0)
		})
	})

	Convey("Given a high symptom index with a mid wellness label", t, func() {
		e := insight.New(model.Scale{Max: 12, HighRiskBelow: 4, ModerateBelow: 8, BandMedium: 4, BandHigh: 7})
		in := e.Derive(model.ScoreResult{Wellness: 4.5, SymptomIndex: 7.5}, nil, nil)
		Convey("Then the band is reported independently of the label", func() {
			So(in.Band, ShouldEqual, model.BandHigh)
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a mixed history", t, func() {
		history := []model.HistoryEntry{
			{Date: "2026-10-02", Wellness: 9, Risk: model.RiskLow},
			{Date: "2026-10-02", Wellness: 5, Risk: model.RiskModerate},
			{Date: "2026-10-03", Wellness: 1, Risk: model.RiskHigh},
		}
		s := insight.Summarize(history)

		Convey("Then totals and counts match", func() {
			So(s.TotalScans, ShouldEqual, 3)
			So(s.AverageWellness, ShouldEqual, 5)
			So(s.Last.Date, ShouldEqual, "2026-10-03")
			So(s.Counts, ShouldResemble, insight.RiskCounts{Green: 1, Yellow: 1, Red: 1})
		})

		Convey("Then daily averages group by date", func() {
			So(s.Daily, ShouldResemble, []insight.DailyAverage{
				{Date: "2026-10-02", Average: 7, Scans: 2},
				{Date: "2026-10-03", Average: 1, Scans: 1},
			})
		})
	})

	Convey("Given more dates than the chart holds", t, func() {
		var history []model.HistoryEntry
		for _, d := range []string{"2026-10-01", "2026-10-02", "2026-10-03", "2026-10-04", "2026-10-05", "2026-10-06", "2026-10-07", "2026-10-08", "2026-10-09"} {
			history = append(history, model.HistoryEntry{Date: d, Wellness: 6})
		}
		daily := insight.DailyAverages(history, insight.DefaultChartDays)
		So(len(daily), ShouldEqual, 7)
		So(daily[0].Date, ShouldEqual, "2026-10-03")
	})

	Convey("Given no history", t, func() {
		s := insight.Summarize(nil)
		So(s.TotalScans, ShouldEqual, 0)
		So(s.Last, ShouldBeNil)
	})
}

func TestMixedStrategies(t *testing.T) {
	Convey("Given a history that switched scoring strategies", t, func() {
		scan := func(strategy string, wellness float64) model.HistoryEntry {
			return model.HistoryEntry{Date: "2026-10-01", Strategy: strategy, Wellness: wellness, SymptomIndex: 12 - wellness, Risk: model.RiskModerate}
		}
		history := []model.HistoryEntry{
			scan("dass-lifestyle-v2", 5),
			scan("lifestyle-sum-v1", 13),
			scan("dass-lifestyle-v2", 6),
			scan("lifestyle-sum-v1", 13),
			scan("dass-lifestyle-v2", 8),
		}
		habits := []model.HabitRecord{{Date: "2026-10-01", Done: map[model.Habit]bool{model.HabitWater: true}}}
		e := insight.New(dassScale, insight.WithStrategy("dass-lifestyle-v2"))

		Convey("Then the prediction only extrapolates its own scale", func() {
			p := e.Predict(history)
			So(p.Value, ShouldAlmostEqual, 9.8, 1e-9)
		})

		Convey("Then the trend does not count other scales", func() {
			So(e.Trend(history).Sufficient, ShouldBeFalse)
			So(insight.New(dassScale).Trend(history).Sufficient, ShouldBeTrue)
		})

		Convey("Then habit groups only hold entries on the same scale", func() {
			impacts := e.HabitImpacts(history, habits)
			for _, hi := range impacts {
				if hi.Habit == model.HabitWater {
					So(hi.DoneCount, ShouldEqual, 3)
				}
			}
		})

		Convey("Then the summary counts every scan but averages one scale", func() {
			s := e.Summarize(history)
			So(s.Strategy, ShouldEqual, "dass-lifestyle-v2")
			So(s.TotalScans, ShouldEqual, 5)
			So(s.Counts.Yellow, ShouldEqual, 5)
			So(s.AverageWellness, ShouldAlmostEqual, 19.0/3, 1e-9)
			So(s.Daily, ShouldResemble, []insight.DailyAverage{{Date: "2026-10-01", Average: 19.0 / 3, Scans: 3}})
		})
	})
}
