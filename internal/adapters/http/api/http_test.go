package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"testing"

	"github.com/okian/calcsum/internal/adapters/http/api"
	service "github.com/okian/calcsum/internal/app"
	"github.com/okian/calcsum/internal/domain/model"
	"github.com/okian/calcsum/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// panickingDeps blows up inside Calculate.
type panickingDeps struct{}

func (panickingDeps) Calculate(context.Context, string, string) (model.CalculationResult, error) {
	panic("boom")
}

func (panickingDeps) RecordSuccess(context.Context) {}

func (panickingDeps) RecordFault(context.Context, error) {}

func newMux(deps api.Dependencies, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, opts...)
	server.Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeResult(w *httptest.ResponseRecorder) model.CalculationResult {
	var res model.CalculationResult
	So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
	return res
}

func TestCalculateHandler(t *testing.T) {
	Convey("Given the calculate endpoint backed by the service", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc)

		Convey("When no operands are given", func() {
			w := get(mux, "/calculate")

			Convey("Then the defaults 4 and 6 should be summed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				res := decodeResult(w)
				So(res.Num1, ShouldEqual, 4)
				So(res.Num2, ShouldEqual, 6)
				So(res.Result, ShouldEqual, 10)
			})
		})

		Convey("When num1=5 and num2=6", func() {
			w := get(mux, "/calculate?num1=5&num2=6")

			Convey("Then the body should carry 11", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, `{"num1":5,"num2":6,"result":11}`)
				So(decodeResult(w).Result, ShouldNotEqual, 9)
				So(svc.GetStats()["calculations"], ShouldEqual, int64(1))
			})
		})

		Convey("When only one operand is given", func() {
			w := get(mux, "/calculate?num2=1.5")

			Convey("Then the other should use its default", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				res := decodeResult(w)
				So(res.Num1, ShouldEqual, 4)
				So(res.Result, ShouldEqual, 5.5)
			})
		})

		Convey("When operands carry whitespace and trailing text", func() {
			w := get(mux, "/calculate?num1=%20%203kg&num2=-1.5e1x")

			Convey("Then their numeric prefixes should be used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				res := decodeResult(w)
				So(res.Num1, ShouldEqual, 3)
				So(res.Num2, ShouldEqual, -15)
				So(res.Result, ShouldEqual, -12)
			})
		})

		Convey("When a range of numeric pairs is sent", func() {
			pairs := [][2]float64{{0, 0}, {-1, 1}, {2.25, 3.5}, {1e6, -2e-3}, {0.1, 0.2}}

			Convey("Then every result should equal a+b", func() {
				for _, p := range pairs {
					q := url.Values{
						"num1": {strconv.FormatFloat(p[0], 'g', -1, 64)},
						"num2": {strconv.FormatFloat(p[1], 'g', -1, 64)},
					}
					w := get(mux, "/calculate?"+q.Encode())
					So(w.Code, ShouldEqual, http.StatusOK)
					So(decodeResult(w).Result, ShouldEqual, p[0]+p[1])
				}
			})
		})

		Convey("When the same request is repeated", func() {
			first := get(mux, "/calculate?num1=7.5&num2=2")
			second := get(mux, "/calculate?num1=7.5&num2=2")

			Convey("Then the bodies should be identical", func() {
				So(second.Body.String(), ShouldEqual, first.Body.String())
			})
		})

		Convey("When operands are swapped", func() {
			ab := get(mux, "/calculate?num1=0.1&num2=0.7")
			ba := get(mux, "/calculate?num1=0.7&num2=0.1")

			Convey("Then the results should match", func() {
				So(decodeResult(ab).Result, ShouldEqual, decodeResult(ba).Result)
			})
		})

		Convey("When num1 is not a number", func() {
			w := get(mux, "/calculate?num1=abc&num2=6")

			Convey("Then the generic 500 should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldEqual, `{"message":"Server error occurred"}`)
			})
		})

		Convey("When num2 is present but empty", func() {
			w := get(mux, "/calculate?num2=")

			Convey("Then it should not fall back to the default", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When the sum cannot be represented in JSON", func() {
			w := get(mux, "/calculate?num1=1e308&num2=1e308")

			Convey("Then the generic 500 should be returned and counted only as a fault", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldEqual, `{"message":"Server error occurred"}`)
				stats := svc.GetStats()
				So(stats["faults"], ShouldEqual, int64(1))
				So(stats["calculations"], ShouldEqual, int64(0))
				So(stats["invalidInput"], ShouldEqual, int64(0))
			})
		})

		Convey("When the method is not GET", func() {
			req := httptest.NewRequest(http.MethodPost, "/calculate", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then 405 should be returned with Allow", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
			})
		})
	})
}

func TestCalculateHandlerOptions(t *testing.T) {
	Convey("Given a server with custom options", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When custom defaults are configured", func() {
			mux := newMux(svc, api.WithDefaults("1", "2"))
			w := get(mux, "/calculate")

			Convey("Then they should be used for absent operands", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeResult(w).Result, ShouldEqual, 3)
			})
		})

		Convey("When invalid input reporting is enabled", func() {
			mux := newMux(svc, api.WithReportInvalidInput(true))

			Convey("Then bad operands should yield 400 with the reason", func() {
				w := get(mux, "/calculate?num1=abc&num2=x")
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "invalid_input")
				So(body["message"], ShouldEqual, "Invalid numbers: num1, num2")
			})

			Convey("And internal faults should still yield 500", func() {
				w := get(mux, "/calculate?num1=1e308&num2=1e308")
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When the calculator fails unexpectedly", func() {
			faulty := service.New(service.WithCalculator(func(string, string) (model.CalculationResult, error) {
				return model.CalculationResult{}, errors.New("disk on fire")
			}))
			So(faulty.Start(context.Background()), ShouldBeNil)
			mux := newMux(faulty, api.WithReportInvalidInput(true))
			w := get(mux, "/calculate")

			Convey("Then the generic 500 should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldEqual, `{"message":"Server error occurred"}`)
			})
		})

		Convey("When a handler panics", func() {
			mux := newMux(panickingDeps{})
			w := get(mux, "/calculate")

			Convey("Then the panic should become the generic 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldEqual, `{"message":"Server error occurred"}`)
			})
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given a registered server", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc)

		Convey("When calling /healthz", func() {
			w := get(mux, "/healthz")

			Convey("Then it should report ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, `{"status":"ok"}`)
			})
		})

		Convey("When calling /stats", func() {
			w := get(mux, "/stats")

			Convey("Then it should return the provider's stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, `{"started":true}`)
			})
		})

		Convey("When calling /metrics after a calculation", func() {
			_ = get(mux, "/calculate")
			w := get(mux, "/metrics")

			Convey("Then Prometheus output should include the calculation counter", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "calc_api_calculations_total")
				So(w.Body.String(), ShouldContainSubstring, "calc_api_http_requests_total")
			})
		})

		Convey("When registering on a nil mux", func() {
			server := api.NewServer(svc, svc)

			Convey("Then it should panic", func() {
				So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestIDFromContext(r.Context())
		}))

		Convey("When the caller sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/calculate", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it should be reused", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the caller sends none", func() {
			req := httptest.NewRequest(http.MethodGet, "/calculate", http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then a UUID should be generated", func() {
				So(seen, ShouldHaveLength, 36)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("When no middleware ran", func() {
			Convey("Then the context should have no id", func() {
				So(api.RequestIDFromContext(context.Background()), ShouldBeEmpty)
			})
		})
	})
}

// brokenConn accepts headers but fails every body write.
type brokenConn struct {
	header http.Header
	status int
}

func (b *brokenConn) Header() http.Header { return b.header }

func (b *brokenConn) WriteHeader(status int) { b.status = status }

func (b *brokenConn) Write([]byte) (int, error) { return 0, errors.New("connection reset by peer") }

func TestResponseWriteFailure(t *testing.T) {
	Convey("Given a client connection that fails on write", t, func() {
		var buf bytes.Buffer
		logger.SetOutput(&buf)
		So(logger.SetFormat("text"), ShouldBeNil)
		So(logger.SetLevelString("debug"), ShouldBeNil)
		defer func() {
			logger.SetOutput(os.Stdout)
			_ = logger.SetFormat("text")
			_ = logger.SetLevelString("error")
		}()

		mux := newMux(service.New())
		w := &brokenConn{header: http.Header{}}

		Convey("When the health route answers", func() {
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

			Convey("Then the failed write should be logged at debug", func() {
				So(w.status, ShouldEqual, http.StatusOK)
				So(buf.String(), ShouldContainSubstring, "response write failed")
				So(buf.String(), ShouldContainSubstring, "connection reset by peer")
			})
		})
	})
}
