// Package metrics exposes red-black tree counters to Prometheus.
package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"rbtree/domain/rbtree"
)

// Source is the read-only view of a tree the collector needs.
type Source interface {
	Len() int
	Height() int
	BlackHeight() int
	Stats() rbtree.Stats
}

// Collector reports a tree's shape and work counters as const metrics,
// reading them fresh on every scrape. Reads are not synchronized with
// the tree's writer; callers scrape between mutations.
type Collector struct {
	src Source

	nodes       *prometheus.Desc
	height      *prometheus.Desc
	blackHeight *prometheus.Desc
	ops         *prometheus.Desc
	rotations   *prometheus.Desc
	insertFixup *prometheus.Desc
	eraseFixup  *prometheus.Desc
	slotReuses  *prometheus.Desc
}

func NewCollector(namespace string, src Source, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "rbtree", name), help, labels, constLabels)
	}
	return &Collector{
		src:         src,
		nodes:       desc("nodes", "Live nodes in the tree."),
		height:      desc("height", "Nodes on the longest root-to-leaf path."),
		blackHeight: desc("black_height", "Black nodes on every path below the root."),
		ops:         desc("operations_total", "Successful mutations by kind.", "op"),
		rotations:   desc("rotations_total", "Rotations by direction.", "direction"),
		insertFixup: desc("insert_fixup_total", "Insert fixup steps by case.", "case"),
		eraseFixup:  desc("erase_fixup_total", "Erase fixup steps by case.", "case"),
		slotReuses:  desc("slot_reuses_total", "Inserts served from the free list."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.height
	ch <- c.blackHeight
	ch <- c.ops
	ch <- c.rotations
	ch <- c.insertFixup
	ch <- c.eraseFixup
	ch <- c.slotReuses
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()

	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	counter := func(d *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}

	gauge(c.nodes, c.src.Len())
	gauge(c.height, c.src.Height())
	gauge(c.blackHeight, c.src.BlackHeight())

	counter(c.ops, st.Inserts, "insert")
	counter(c.ops, st.Erases, "erase")
	counter(c.rotations, st.LeftRotations, "left")
	counter(c.rotations, st.RightRotations, "right")
	counter(c.insertFixup, st.InsertUncleRed, "uncle_red")
	counter(c.insertFixup, st.InsertInner, "inner")
	counter(c.insertFixup, st.InsertOuter, "outer")
	counter(c.eraseFixup, st.EraseSiblingRed, "sibling_red")
	counter(c.eraseFixup, st.EraseNephewsBlack, "nephews_black")
	counter(c.eraseFixup, st.EraseNearNephewRed, "near_nephew_red")
	counter(c.eraseFixup, st.EraseFarNephewRed, "far_nephew_red")
	counter(c.slotReuses, st.SlotReuses)
}

// WriteTextfile registers cs on a fresh registry and writes one scrape in
// the text exposition format to path, for node_exporter's textfile
// collector or offline inspection.
func WriteTextfile(path string, cs ...prometheus.Collector) error {
	reg := prometheus.NewRegistry()
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return errors.Wrap(err, "register collector")
		}
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
