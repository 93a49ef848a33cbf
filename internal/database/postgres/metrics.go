package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type statSource interface {
	Stat() *pgxpool.Stat
}

// PoolCollector exports pgxpool connection counters.
type PoolCollector struct {
	src      statSource
	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
	waits    *prometheus.Desc
}

func NewPoolCollector(src statSource) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("skillhire", "db_pool", name), help, nil, nil)
	}
	return &PoolCollector{
		src:      src,
		acquired: desc("acquired_conns", "Connections currently checked out"),
		idle:     desc("idle_conns", "Idle connections"),
		total:    desc("total_conns", "Open connections"),
		max:      desc("max_conns", "Configured pool size"),
		waits:    desc("empty_acquire_total", "Acquires that had to wait for a connection"),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.waits
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stat()
	if st == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(st.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(st.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(st.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(st.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.waits, prometheus.CounterValue, float64(st.EmptyAcquireCount()))
}
