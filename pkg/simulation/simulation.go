// Package simulation runs agent pairs over the graph tick by tick.
package simulation

import (
	"context"
	"sync"
	"time"

	"lintang/congestionnav/pkg/agent"
	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/server"

	"github.com/google/uuid"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

type Config struct {
	ObstacleCount   int
	HexRadius       float64
	AgentSpeed      float64
	MaxPairAttempts int
	MaxTicks        int
	ShowProgress    bool
}

func DefaultConfig() Config {
	return Config{
		ObstacleCount:   3,
		HexRadius:       0.009,
		AgentSpeed:      agent.DefaultSpeed,
		MaxPairAttempts: 1000,
		MaxTicks:        100000,
	}
}

type Option func(*Simulation)

func WithMetrics(m *Metrics) Option {
	return func(s *Simulation) {
		s.metrics = m
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		s.log = l
	}
}

// Simulation owns the graph while it runs. Every exported method takes the lock, so the HTTP layer
// can read snapshots and drag obstacles between ticks.
type Simulation struct {
	mu sync.RWMutex

	g   *graph.DynamicGraph
	cfg Config

	runID   string
	round   int
	tick    int
	dynamic *agent.Agent
	static  *agent.Agent

	metrics *Metrics
	log     *zap.Logger
}

func New(g *graph.DynamicGraph, cfg Config, opts ...Option) *Simulation {
	s := &Simulation{
		g:     g,
		cfg:   cfg,
		runID: uuid.NewString(),
		log:   zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulation) RunID() string {
	return s.runID
}

// NewRound replaces the obstacles with ObstacleCount fresh hexagons and creates a new agent pair.
func (s *Simulation) NewRound(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newRound(ctx)
}

func (s *Simulation) newRound(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.g.ClearPolygons()
	for i := 0; i < s.cfg.ObstacleCount; i++ {
		if _, ok := s.g.GenerateHex(s.cfg.HexRadius); !ok {
			return server.WrapErrorf(nil, server.ErrNotFound, "no populated grid cell to place obstacle")
		}
	}

	dynamic, static, err := agent.InitPair(s.g, s.g.Rand(), s.cfg.AgentSpeed, s.cfg.MaxPairAttempts)
	if err != nil {
		return err
	}
	s.dynamic, s.static = dynamic, static
	s.round++
	s.tick = 0

	s.log.Info("round started",
		zap.String("run_id", s.runID),
		zap.Int("round", s.round),
		zap.Int64("start", dynamic.Start()),
		zap.Int64("end", dynamic.End()),
		zap.Int("obstacles", len(s.g.Polygons())))
	return nil
}

// Step one tick: obstacles move first, then each agent reacts to the new positions.
func (s *Simulation) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step()
}

func (s *Simulation) step() error {
	if s.dynamic == nil {
		return server.WrapErrorf(nil, server.ErrConflict, "no round in progress")
	}
	t0 := time.Now()

	moved := s.g.UpdatePolygonsPosition()
	for _, a := range s.agents() {
		a.Move(s.g)
	}
	s.tick++

	if s.metrics != nil {
		s.metrics.Ticks.Inc()
		s.metrics.RejectedMoves.Add(float64(len(s.g.Polygons()) - moved))
		s.metrics.TickDuration.Observe(time.Since(t0).Seconds())
	}
	return nil
}

func (s *Simulation) agents() []*agent.Agent {
	if s.dynamic == nil {
		return nil
	}
	return []*agent.Agent{s.dynamic, s.static}
}

func (s *Simulation) arrived() bool {
	for _, a := range s.agents() {
		if !a.Arrived() {
			return false
		}
	}
	return s.dynamic != nil
}

// Done true when both agents arrived or MaxTicks was reached.
func (s *Simulation) Done() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done()
}

func (s *Simulation) done() bool {
	return s.arrived() || (s.cfg.MaxTicks > 0 && s.tick >= s.cfg.MaxTicks)
}

// RunRound starts a new round and steps it until Done. Cancelling ctx stops between ticks.
func (s *Simulation) RunRound(ctx context.Context) (RoundResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.newRound(ctx); err != nil {
		return RoundResult{}, err
	}
	for !s.done() {
		if err := ctx.Err(); err != nil {
			return RoundResult{}, err
		}
		if err := s.step(); err != nil {
			return RoundResult{}, err
		}
	}
	res := s.result()

	if s.metrics != nil {
		for _, am := range res.Agents {
			s.metrics.Replans.WithLabelValues(am.Type).Add(float64(am.Replans))
		}
		s.metrics.RoundsCompleted.WithLabelValues(boolLabel(res.Completed)).Inc()
	}
	s.log.Info("round finished",
		zap.String("run_id", s.runID),
		zap.Int("round", res.Round),
		zap.Int("ticks", res.Ticks),
		zap.Bool("completed", res.Completed))
	return res, nil
}

// Run plays rounds one after another.
func (s *Simulation) Run(ctx context.Context, rounds int) ([]RoundResult, error) {
	var bar *progressbar.ProgressBar
	if s.cfg.ShowProgress {
		bar = progressbar.NewOptions(rounds,
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][1/1][reset] running simulation rounds ..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	results := make([]RoundResult, 0, rounds)
	for i := 0; i < rounds; i++ {
		res, err := s.RunRound(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return results, nil
}

// Result summary of the current round so far.
func (s *Simulation) Result() (RoundResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dynamic == nil {
		return RoundResult{}, server.WrapErrorf(nil, server.ErrNotFound, "no round started")
	}
	return s.result(), nil
}

func (s *Simulation) result() RoundResult {
	startP, _ := s.g.Point(s.dynamic.Start())
	res := RoundResult{
		RunID:     s.runID,
		Round:     s.round,
		Start:     s.dynamic.Start(),
		End:       s.dynamic.End(),
		StartLat:  startP.Y,
		StartLon:  startP.X,
		Ticks:     s.tick,
		Completed: s.arrived(),
	}
	for _, a := range s.agents() {
		res.Agents = append(res.Agents, agentMetrics(a))
	}
	return res
}

// AgentState read-only view of one agent.
type AgentState struct {
	Type    string       `json:"type"`
	Lon     float64      `json:"lon"`
	Lat     float64      `json:"lat"`
	Current int64        `json:"current"`
	Start   int64        `json:"start"`
	End     int64        `json:"end"`
	Arrived bool         `json:"arrived"`
	Planned []int64      `json:"planned"`
	Path    []int64      `json:"path"`
	Metrics AgentMetrics `json:"metrics"`
	Unsafe  []geo.Cell   `json:"-"`
}

type State struct {
	RunID     string             `json:"run_id"`
	Round     int                `json:"round"`
	Tick      int                `json:"tick"`
	Agents    []AgentState       `json:"agents"`
	Obstacles []obstacle.Polygon `json:"-"`
}

// Snapshot copies agent and obstacle state under the read lock.
func (s *Simulation) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{RunID: s.runID, Round: s.round, Tick: s.tick}
	for _, a := range s.agents() {
		pos := a.Position()
		st.Agents = append(st.Agents, AgentState{
			Type:    a.Type().String(),
			Lon:     pos.X,
			Lat:     pos.Y,
			Current: a.CurrentID(),
			Start:   a.Start(),
			End:     a.End(),
			Arrived: a.Arrived(),
			Planned: a.Planned(),
			Path:    a.Path(),
			Metrics: agentMetrics(a),
			Unsafe:  a.UnsafeCells(),
		})
	}
	for _, p := range s.g.Polygons() {
		st.Obstacles = append(st.Obstacles, p.Clone())
	}
	return st
}

// View runs fn with the graph under the read lock. fn must not mutate the graph.
func (s *Simulation) View(fn func(g *graph.DynamicGraph) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.g)
}

// Update runs fn with the graph under the write lock, for obstacle edits between ticks.
func (s *Simulation) Update(fn func(g *graph.DynamicGraph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.g)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
