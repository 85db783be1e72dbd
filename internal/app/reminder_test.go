package service_test

import (
	"sync/atomic"
	"testing"
	"time"

	service "github.com/okian/mindscan/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReminder(t *testing.T) {
	Convey("Given a reminder with a short delay", t, func() {
		var fired atomic.Int32
		done := make(chan struct{}, 4)
		r := service.NewReminder(10*time.Millisecond, func() {
			fired.Add(1)
			done <- struct{}{}
		})

		Convey("When it is armed", func() {
			r.Arm()
			So(r.Armed(), ShouldBeTrue)

			Convey("Then it fires once and disarms", func() {
				<-done
				So(fired.Load(), ShouldEqual, 1)
				So(r.Armed(), ShouldBeFalse)
			})
		})

		Convey("When it is cancelled before firing", func() {
			r.Arm()
			So(r.Cancel(), ShouldBeTrue)
			time.Sleep(30 * time.Millisecond)

			Convey("Then it never fires", func() {
				So(fired.Load(), ShouldEqual, 0)
				So(r.Armed(), ShouldBeFalse)
				So(r.Cancel(), ShouldBeFalse)
			})
		})

		Convey("When it is re-armed", func() {
			r.Arm()
			r.Arm()
			<-done
			time.Sleep(30 * time.Millisecond)

			Convey("Then only the latest timer fires", func() {
				So(fired.Load(), ShouldEqual, 1)
			})
		})
	})
}
