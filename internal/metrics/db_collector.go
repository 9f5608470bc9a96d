package metrics

import "github.com/prometheus/client_golang/prometheus"

// DBPoolStatFunc reports connection counts from the pgx pool. Taking a
// func keeps this package free of a pgxpool import.
type DBPoolStatFunc func() (total, idle, acquired int32)

// poolGauge pairs a metric descriptor with the stat it reads.
type poolGauge struct {
	desc *prometheus.Desc
	read func(total, idle, acquired int32) int32
}

type dbPoolCollector struct {
	statFunc DBPoolStatFunc
	gauges   []poolGauge
}

// NewDBPoolCollector builds a collector that samples the connection pool
// on every scrape.
func NewDBPoolCollector(statFunc DBPoolStatFunc) prometheus.Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("atolye_db_pool_"+name, help, nil, nil)
	}
	return &dbPoolCollector{
		statFunc: statFunc,
		gauges: []poolGauge{
			{
				desc: desc("total_conns", "Connections currently held by the pool, idle or in use."),
				read: func(total, _, _ int32) int32 { return total },
			},
			{
				desc: desc("idle_conns", "Pool connections waiting to be handed out."),
				read: func(_, idle, _ int32) int32 { return idle },
			},
			{
				desc: desc("acquired_conns", "Pool connections checked out by active queries."),
				read: func(_, _, acquired int32) int32 { return acquired },
			},
		},
	}
}

func (c *dbPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.gauges {
		ch <- g.desc
	}
}

func (c *dbPoolCollector) Collect(ch chan<- prometheus.Metric) {
	total, idle, acquired := c.statFunc()
	for _, g := range c.gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, float64(g.read(total, idle, acquired)))
	}
}
