package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewCapacityRejectedTotal returns a Prometheus counter for the number of yard placements rejected for lack of capacity
func NewCapacityRejectedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "yard_capacity_rejected_total",
		Help: "Total number of yard placements rejected for lack of capacity",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewTerminalEventsHandledTotal returns a Prometheus counter for the number of terminal events applied by the coordinator
func NewTerminalEventsHandledTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "terminal_events_handled_total",
		Help: "Total number of terminal events applied by the allocation coordinator",
	})
}

// NewShipmentsArchivedTotal returns a Prometheus counter for the number of delivered shipments closed out by the archiver
func NewShipmentsArchivedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipments_archived_total",
		Help: "Total number of delivered shipments closed out by the archiver",
	})
}
