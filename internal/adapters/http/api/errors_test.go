package api

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestError(t *testing.T) {
	Convey("Given wrapped API errors", t, func() {
		cause := errors.New("boom")

		Convey("Then the kind and the cause both match", func() {
			err := WrapKind("api.op", ErrBadRequest, cause)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
		})

		Convey("Then Wrap keeps nil as nil", func() {
			So(Wrap("api.op", nil), ShouldBeNil)
			So(Wrap("api.op", cause).Error(), ShouldEqual, "api.op: boom")
		})

		Convey("Then NewKind has no cause", func() {
			err := NewKind("api.op", ErrInternal)
			So(errors.Is(err, ErrInternal), ShouldBeTrue)
			So(errors.Is(err, ErrBadRequest), ShouldBeFalse)
			So(err.Error(), ShouldEqual, "api.op: internal error")
		})
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(503), ShouldEqual, "unavailable")
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "validation")
		So(getErrorType(405), ShouldEqual, "method_not_allowed")
		So(getErrorType(415), ShouldEqual, "client_error")
		So(getErrorSeverity(500), ShouldEqual, "high")
		So(getErrorSeverity(422), ShouldEqual, "medium")
	})
}
