package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Simulations  int
	Duration     time.Duration
	Expansions   int
	TerminalHits int
	IsTreeReused bool
}

type GameMetric struct {
	StartingColor int
	Winner        int // 0 for a draw
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

// Collector gathers statistics of a single search call. Add* methods are
// called from search workers concurrently.
type Collector interface {
	Start()
	SetTreeReused(value bool)
	AddSimulation()
	AddExpansion()
	AddTerminal()
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	simulations  atomic.Int64
	expansions   atomic.Int64
	terminalHits atomic.Int64
	isTreeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.simulations.Store(0)
	m.expansions.Store(0)
	m.terminalHits.Store(0)
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused.Store(value)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminalHits.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Simulations:  int(m.simulations.Load()),
		Duration:     time.Since(m.startTime),
		Expansions:   int(m.expansions.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		IsTreeReused: m.isTreeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) SetTreeReused(value bool) {}
func (m *dummyCollector) AddSimulation()           {}
func (m *dummyCollector) AddExpansion()            {}
func (m *dummyCollector) AddTerminal()             {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
