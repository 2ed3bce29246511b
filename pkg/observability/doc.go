/*
Package observability exposes machine execution as Prometheus metrics.

Metrics plugs into a machine through its lifecycle hooks:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := turing.New(turing.WithLifecycleHooks(m.Hooks()))
*/
package observability
