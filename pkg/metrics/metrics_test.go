package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry and custom names", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics are registered under those names", func() {
				manager.RecordCollectionChange("add")
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_changes_total")
			})
		})

		Convey("When empty options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "dexkeeper")
				So(manager.subsystem, ShouldEqual, "collection")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording collection activity", func() {
			manager.UpdateCollectionSize(42)
			manager.RecordCollectionChange("add")
			manager.RecordCollectionChange("add")
			manager.RecordCollectionChange("remove")
			manager.RecordImportedRecords(7)

			Convey("Then counters and gauges reflect it", func() {
				So(testutil.ToFloat64(manager.collectionSize), ShouldEqual, 42)
				So(testutil.ToFloat64(manager.collectionChanges.WithLabelValues("add")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.collectionChanges.WithLabelValues("remove")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.importedRecords), ShouldEqual, 7)
			})
		})

		Convey("When recording store and lookup activity", func() {
			manager.RecordStoreLatency("memory", "put", 0.3)
			manager.RecordStoreError("badger", "get")
			manager.RecordRefdataLookup("species", true)
			manager.RecordRefdataLookup("species", false)
			manager.RecordRefdataLookup("species", false)

			Convey("Then labelled series are tracked separately", func() {
				So(testutil.ToFloat64(manager.storeErrors.WithLabelValues("badger", "get")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.refdataLookups.WithLabelValues("species", "hit")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.refdataLookups.WithLabelValues("species", "miss")), ShouldEqual, 2)
				So(testutil.CollectAndCount(manager.storeLatency), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP traffic", func() {
			manager.RecordHTTPRequest("collection", "GET", "200")
			manager.RecordHTTPRequestDuration("collection", "GET", "200", 3)
			manager.RecordErrorByEndpoint("collection", "POST", "client_error")

			So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("collection", "GET", "200")), ShouldEqual, 1)
			So(testutil.ToFloat64(manager.errorsByEndpoint.WithLabelValues("collection", "POST", "client_error")), ShouldEqual, 1)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When using package-level helpers", func() {
			So(func() {
				RecordHTTPRequest("healthz", "GET", "200")
				RecordHTTPRequestDuration("healthz", "GET", "200", 1)
				RecordErrorByEndpoint("healthz", "GET", "server_error")
				UpdateCollectionSize(3)
				RecordCollectionChange("clear")
				RecordImportedRecords(1)
				RecordStoreLatency("memory", "get_all", 0.1)
				RecordStoreError("memory", "delete")
				RecordAnalyticsLatency(2)
				RecordRefdataLookup("move", true)
			}, ShouldNotPanic)

			Convey("Then the custom registry gathers them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
