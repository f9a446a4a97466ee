package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionStage names the ladder rung that produced a move.
type DecisionStage string

const (
	StageForced   DecisionStage = "forced"   // single legal column
	StageWin      DecisionStage = "win"      // immediate winning move
	StageBlock    DecisionStage = "block"    // denial of an immediate loss
	StageLookup   DecisionStage = "lookup"   // learned best-known action
	StageSearch   DecisionStage = "search"   // full MCTS episode
	StageFallback DecisionStage = "fallback" // defensive default
)

type DecisionMetric struct {
	Stage    DecisionStage
	Episodes int
	Playouts int
	Duration time.Duration
}

type MoveMetric struct {
	Step   int
	Player string
	Column int
	DecisionMetric
}

type GameMetric struct {
	StartingAgent int
	Winner        string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

// Collector gathers per-decision statistics. The searcher reports
// episodes and playouts; the policy records the stage that answered.
type Collector interface {
	Start()
	SetStage(stage DecisionStage)
	AddEpisode()
	AddPlayout()
	Complete() DecisionMetric
}

type collector struct {
	startTime time.Time
	stage     atomic.Value
	episodes  atomic.Int32
	playouts  atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.stage.Store(StageFallback)
	c.episodes.Store(0)
	c.playouts.Store(0)
}

func (c *collector) SetStage(stage DecisionStage) {
	c.stage.Store(stage)
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) AddPlayout() {
	c.playouts.Add(1)
}

func (c *collector) Complete() DecisionMetric {
	stage, _ := c.stage.Load().(DecisionStage)
	return DecisionMetric{
		Stage:    stage,
		Episodes: int(c.episodes.Load()),
		Playouts: int(c.playouts.Load()),
		Duration: time.Since(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start()                       {}
func (dummyCollector) SetStage(stage DecisionStage) {}
func (dummyCollector) AddEpisode()                  {}
func (dummyCollector) AddPlayout()                  {}
func (dummyCollector) Complete() DecisionMetric     { return DecisionMetric{} }
