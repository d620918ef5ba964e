package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/calcsum/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have the legacy defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3002")
			convey.So(cfg.DefaultNum1, convey.ShouldEqual, "4")
			convey.So(cfg.DefaultNum2, convey.ShouldEqual, "6")
			convey.So(cfg.ReportInvalidInput, convey.ShouldBeFalse)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "calc")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "api")
		})

		convey.Convey("And durations should be derived from milliseconds", func() {
			convey.So(cfg.ReadTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.WriteTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.IdleTimeout(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.ReadHeaderTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.ShutdownTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.SystemMetricsInterval(), convey.ShouldEqual, 10*time.Second)
		})

		convey.Convey("And the defaults should validate", func() {
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})
}
