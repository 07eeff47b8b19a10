package predict

import "github.com/prometheus/client_golang/prometheus"

var predictionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bidpredict",
		Subsystem: "predict",
		Name:      "predictions_total",
		Help:      "Placeholder bid estimates served, by agency",
	},
	[]string{"agency"},
)

func init() {
	prometheus.MustRegister(predictionsTotal)
}
