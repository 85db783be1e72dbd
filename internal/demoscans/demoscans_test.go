package demoscans_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/mindscan/internal/adapters/http/api"
	service "github.com/okian/mindscan/internal/app"
	"github.com/okian/mindscan/internal/demoscans"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/scoring"
	"github.com/okian/mindscan/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func questions(t *testing.T) []scoring.Question {
	t.Helper()
	s, err := scoring.Lookup(scoring.Default)
	if err != nil {
		t.Fatal(err)
	}
	return s.Questionnaire().Questions
}

// newAPI serves a started in-memory service; wrap may intercept requests.
func newAPI(t *testing.T, wrap func(http.Handler) http.Handler) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithLogger(logger.Nop()), service.WithClock(clock))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, api.WithLogger(logger.Nop())).Register(context.Background(), mux)
	var h http.Handler = mux
	if wrap != nil {
		h = wrap(mux)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func config(baseURL string, days int) *demoscans.Config {
	return &demoscans.Config{
		BaseURL: baseURL,
		Days:    days,
		Seed:    7,
		Workers: 3,
		Timeout: 5 * time.Second,
		Now:     clock,
		Logger:  logger.Nop(),
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		qs := questions(t)
		cfg := demoscans.Config{Days: 5, Seed: 7, Now: clock}
		days := demoscans.Generate(cfg, qs)

		Convey("Then it covers consecutive days ending today", func() {
			So(len(days), ShouldEqual, 5)
			So(days[0].Date, ShouldEqual, "2026-10-10")
			So(days[4].Date, ShouldEqual, "2026-10-14")
			So(days[4].SubmissionID, ShouldEqual, "demo-7-2026-10-14")
		})

		Convey("Then every answer is within its question's domain", func() {
			for _, d := range days {
				So(len(d.Answers), ShouldEqual, len(qs))
				for _, q := range qs {
					So(d.Answers[q.ID], ShouldBeBetweenOrEqual, q.Min, q.Max)
				}
				So(len(d.Habits), ShouldEqual, len(model.Habits))
				So(d.Strain, ShouldBeBetweenOrEqual, 0.0, 1.0)
			}
		})

		Convey("Then the same seed reproduces the same days", func() {
			So(demoscans.Generate(cfg, qs), ShouldResemble, days)
		})

		Convey("Then a different seed yields different answers", func() {
			other := demoscans.Generate(demoscans.Config{Days: 5, Seed: 8, Now: clock}, qs)
			So(other, ShouldNotResemble, days)
		})

		Convey("Then the generated answers score cleanly", func() {
			s, _ := scoring.Lookup(scoring.Default)
			for _, d := range days {
				_, err := s.Compute(d.Answers)
				So(err, ShouldBeNil)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		srv := newAPI(t, nil)
		ctx := context.Background()

		Convey("When a simulation runs", func() {
			report, err := demoscans.Run(ctx, config(srv.URL, 6))
			So(err, ShouldBeNil)

			Convey("Then every day is uploaded and recorded once", func() {
				So(report.Stats.DaysGenerated, ShouldEqual, 6)
				So(report.Stats.HabitDaysSaved, ShouldEqual, 6)
				So(report.Stats.ScansRecorded, ShouldEqual, 6)
				So(report.Stats.ScansDuplicate, ShouldEqual, 1)
				So(report.Stats.ScansFailed, ShouldEqual, 0)
				So(report.Total, ShouldEqual, 6)
				So(report.Streak, ShouldEqual, 6)
				So(report.Level, ShouldBeGreaterThanOrEqualTo, 1)
			})

			Convey("And the same seed runs again", func() {
				again, err := demoscans.Run(ctx, config(srv.URL, 6))
				So(err, ShouldBeNil)

				Convey("Then every submission is acknowledged as a duplicate", func() {
					So(again.Stats.ScansRecorded, ShouldEqual, 0)
					So(again.Stats.ScansDuplicate, ShouldEqual, 7)
					So(again.Total, ShouldEqual, 6)
					So(again.XP, ShouldEqual, report.XP)
				})
			})
		})

		Convey("When an output file is requested", func() {
			cfg := config(srv.URL, 2)
			cfg.OutputFile = filepath.Join(t.TempDir(), "out", "days.json")
			_, err := demoscans.Run(ctx, cfg)
			So(err, ShouldBeNil)

			data, readErr := os.ReadFile(cfg.OutputFile)
			So(readErr, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"date": "2026-10-14"`)
		})
	})

	Convey("Given a service whose summary disagrees with its history", t, func() {
		srv := newAPI(t, func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/summary" {
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(`{"total_scans":999,"counts":{"green":999}}`))
					return
				}
				next.ServeHTTP(w, r)
			})
		})

		_, err := demoscans.Run(context.Background(), config(srv.URL, 3))

		Convey("Then verification fails", func() {
			So(errors.Is(err, demoscans.ErrVerification), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "999")
		})
	})

	Convey("Given no service listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := demoscans.Run(context.Background(), config(url, 3))

		Convey("Then the health check fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "service health check failed")
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given the API client", t, func() {
		srv := newAPI(t, nil)
		client := demoscans.NewClient(srv.URL+"/", time.Second)

		Convey("When a request is rejected", func() {
			status, err := client.Get(context.Background(), "/insights", nil)

			Convey("Then the status and API error code are reported", func() {
				So(status, ShouldEqual, http.StatusNotFound)
				So(errors.Is(err, demoscans.ErrUnexpectedStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "not_found")
			})
		})

		Convey("When a bad body is sent", func() {
			status, err := client.Put(context.Background(), "/habits/not-a-date", map[string]any{"done": map[string]bool{}}, nil)

			So(status, ShouldEqual, http.StatusBadRequest)
			So(errors.Is(err, demoscans.ErrUnexpectedStatus), ShouldBeTrue)
		})
	})
}

func TestBreathe(t *testing.T) {
	Convey("Given a fast breathing session", t, func() {
		var out bytes.Buffer
		outcome, err := demoscans.Breathe(context.Background(), &out, time.Millisecond)

		Convey("Then it prints every second and completes", func() {
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, demoscans.OutcomeCompleted)
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			So(len(lines), ShouldEqual, 61)
			So(lines[0], ShouldStartWith, "[00:00] inhale")
			So(lines[60], ShouldEqual, "[01:00] Well done. Session complete.")
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var out bytes.Buffer
		outcome, err := demoscans.Breathe(ctx, &out, time.Hour)

		Convey("Then the session is reported as cancelled", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(outcome, ShouldEqual, demoscans.OutcomeCancelled)
		})
	})
}
