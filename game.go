package main

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTickPeriod = 50 * time.Millisecond
	commandQueueSize  = 256
)

// ErrLobbyClosed is returned for lobby-only requests that arrive after
// the match has started
var ErrLobbyClosed = errors.New("lobby closed")

// Broadcaster delivers text lines to every connected session
type Broadcaster interface {
	Broadcast(lines ...string)
}

// EventSink receives gameplay events for analytics
type EventSink interface {
	Track(evtType, sessionID, data string)
}

// MatchRecorder persists finished matches
type MatchRecorder interface {
	RecordMatch(rec MatchRecord) error
}

// Game owns the world and runs the fixed-tick simulation. All world
// access happens on the goroutine running Run; other goroutines send
// closures through Submit or Call.
type Game struct {
	world   *World
	index   *ProximityIndex
	phase   *PhaseMachine
	out     Broadcaster
	events  EventSink
	matches MatchRecorder
	clock   func() time.Time
	rng     *rand.Rand
	period  time.Duration

	cmds     chan func(*World)
	ticker   *time.Ticker
	tickC    <-chan time.Time
	stop     chan struct{}
	stopOnce sync.Once
	ticks    atomic.Uint64

	match  MatchRecord
	roster map[string]*MatchPlayer // by avatar ID
	multi  bool                    // match started with more than one avatar
}

// NewGame creates a game bound to the session manager's phase machine
func NewGame(phase *PhaseMachine, out Broadcaster, period time.Duration) *Game {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &Game{
		world:  NewWorld(),
		index:  NewProximityIndex(ProximityRadius),
		phase:  phase,
		out:    out,
		clock:  time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		period: period,
		cmds:   make(chan func(*World), commandQueueSize),
		stop:   make(chan struct{}),
		roster: make(map[string]*MatchPlayer),
	}
}

// Run processes commands and, once the match has begun, ticks. It
// returns after Stop.
func (g *Game) Run() {
	defer g.stopTicker()
	for {
		select {
		case cmd := <-g.cmds:
			cmd(g.world)
		case <-g.tickC:
			g.Tick()
		case <-g.stop:
			return
		}
		if g.ticker != nil && g.phase.Current() != PhaseGame {
			g.stopTicker()
		}
	}
}

// Stop terminates the game loop
func (g *Game) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
}

// Submit queues fn to run on the game goroutine
func (g *Game) Submit(fn func(*World)) {
	select {
	case g.cmds <- fn:
	case <-g.stop:
	}
}

// Call runs fn on the game goroutine and waits for it to finish. It
// returns false if the game stopped first.
func (g *Game) Call(fn func(*World)) bool {
	done := make(chan struct{})
	select {
	case g.cmds <- func(w *World) { fn(w); close(done) }:
	case <-g.stop:
		return false
	}
	select {
	case <-done:
		return true
	case <-g.stop:
		return false
	}
}

// Ticks returns the number of ticks simulated so far
func (g *Game) Ticks() uint64 {
	return g.ticks.Load()
}

func (g *Game) startTicker() {
	g.ticker = time.NewTicker(g.period)
	g.tickC = g.ticker.C
}

func (g *Game) stopTicker() {
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
		g.tickC = nil
	}
}

// Begin installs the map and starts ticking. The caller must already
// have moved the phase to GAME.
func (g *Game) Begin(m *MapData) {
	g.Submit(func(*World) {
		g.begin(m, g.clock())
		g.startTicker()
	})
}

func (g *Game) begin(m *MapData, now time.Time) {
	w := g.world
	w.Install(m, now)
	for _, a := range w.Avatars {
		a.Box.SetLocation(w.Respawn.X, w.Respawn.Y)
		a.Prev = w.Respawn
	}
	for _, p := range w.EnemySpawns {
		if _, err := w.SpawnEnemy(KindThunderGuard, p, now); err != nil {
			log.Printf("game: spawn enemy at %v: %v", p, err)
		}
	}

	g.match = MatchRecord{ID: uuid.NewString(), StartedAt: now}
	g.roster = make(map[string]*MatchPlayer, len(w.Avatars))
	for _, a := range w.Avatars {
		g.roster[a.ID] = &MatchPlayer{SessionID: a.SessionID, AvatarID: a.ID, AvatarKind: a.Kind.String()}
	}
	g.multi = len(w.Avatars) > 1

	log.Printf("game: match %s started, %d avatars, %d enemies, %d interactables",
		g.match.ID, len(w.Avatars), len(w.Enemies), len(w.Interactables))
	g.track(EvtMatchStart, "", map[string]any{"match": g.match.ID, "avatars": len(w.Avatars)})
	g.broadcastWorld()
}

// Tick advances the simulation by one step
func (g *Game) Tick() {
	now := g.clock()
	g.ticks.Add(1)
	w := g.world

	for _, a := range w.Avatars {
		a.Move()
	}

	var spawned []*Attack
	for _, at := range w.Attacks {
		if step := attackSteps[at.Kind]; step != nil {
			spawned = append(spawned, step(at, now, g.rng)...)
		}
	}
	for _, at := range spawned {
		w.AddAttack(at)
	}

	g.index.Rebuild(w)
	for _, e := range w.Enemies {
		e.Update(now, g.index.Avatars(&e.Box), g.index.Interactables(&e.Box))
	}

	g.index.Rebuild(w)
	g.resolveCollisions(now)
	g.applyKillPlane()

	lines := g.cleanup(now)
	lines = append(lines, g.stateLines()...)
	g.out.Broadcast(lines...)

	g.checkGameOver(now)
}

func (g *Game) resolveCollisions(now time.Time) {
	w := g.world
	var blasts []*Attack
	impact := func(at *Attack) {
		if rule := impactRules[at.Kind]; rule != nil {
			if b := rule(at, now); b != nil {
				blasts = append(blasts, b)
			}
		}
	}

	for _, a := range w.Avatars {
		for _, at := range g.index.Attacks(&a.Box) {
			if at.Expired || at.CreatorID == a.ID || !a.Box.Intersects(&at.Box) {
				continue
			}
			strikeAvatar(a, &at.Object, at.Vel, at.Damage, now)
			impact(at)
		}
		for _, e := range g.index.Enemies(&a.Box) {
			if e.Dead() || !a.Box.Intersects(&e.Box) {
				continue
			}
			strikeAvatar(a, &e.Object, e.Vel, e.CollideDamage, now)
		}
		for _, it := range g.index.Interactables(&a.Box) {
			touchInteractable(a, it, now)
		}
	}

	for _, e := range w.Enemies {
		if e.Dead() {
			continue
		}
		for _, at := range g.index.Attacks(&e.Box) {
			if at.Expired || at.CreatorID == e.ID || !e.Box.Intersects(&at.Box) {
				continue
			}
			if strikeEnemy(e, at, now) {
				if a := w.AvatarByID(at.CreatorID); a != nil {
					a.EnemyKills++
				}
			}
			impact(at)
		}
		solids := g.index.Interactables(&e.Box)
		for _, it := range solids {
			e.touchSolid(it, solids, now)
		}
	}

	for _, at := range w.Attacks {
		if at.Expired || impactRules[at.Kind] == nil {
			continue
		}
		for _, it := range g.index.Interactables(&at.Box) {
			if at.Box.Intersects(&it.Box) {
				impact(at)
				break
			}
		}
	}
	for _, b := range blasts {
		w.AddAttack(b)
	}
}

func (g *Game) applyKillPlane() {
	w := g.world
	for _, a := range w.Avatars {
		if w.belowKillPlane(&a.Box) {
			a.Health = -1
		}
	}
	for _, e := range w.Enemies {
		if w.belowKillPlane(&e.Box) {
			e.Health = -1
		}
	}
	for _, at := range w.Attacks {
		if w.belowKillPlane(&at.Box) {
			at.Expired = true
		}
	}
}

// cleanup removes expired attacks and dead enemies, respawns dead
// avatars and eliminates those out of lives. It returns one removal
// line per entity that left the world.
func (g *Game) cleanup(now time.Time) []string {
	w := g.world
	var lines []string
	for _, id := range w.RemoveExpiredAttacks() {
		lines = append(lines, RemoveLine(id))
	}
	for _, e := range w.RemoveDeadEnemies() {
		lines = append(lines, RemoveLine(e.ID))
		g.track(EvtEnemyKilled, "", map[string]any{"enemy": e.ID})
	}

	var out []*Avatar
	for _, a := range w.Avatars {
		if !a.Dead() {
			continue
		}
		if a.Lives > 0 {
			a.Respawn(w.Respawn, now)
			g.track(EvtAvatarRespawn, a.SessionID, map[string]any{"avatar": a.ID, "lives": a.Lives})
			continue
		}
		out = append(out, a)
	}
	for _, a := range out {
		a.Deaths++
		w.RemoveAvatar(a.ID)
		g.retire(a, true)
		lines = append(lines, RemoveLine(a.ID))
		log.Printf("game: %s eliminated", a.ID)
		g.track(EvtAvatarEliminated, a.SessionID, map[string]any{"avatar": a.ID})
	}
	return lines
}

// retire copies an avatar's match stats into the roster
func (g *Game) retire(a *Avatar, eliminated bool) {
	p, ok := g.roster[a.ID]
	if !ok {
		return
	}
	p.Deaths = a.Deaths
	p.EnemyKills = a.EnemyKills
	p.Eliminated = eliminated
}

func (g *Game) checkGameOver(now time.Time) {
	if g.phase.Current() != PhaseGame {
		return
	}
	n := len(g.world.Avatars)
	if n > 1 || (n == 1 && !g.multi) {
		return
	}
	g.finish(now)
}

// finish ends the match: GAMEOVER goes out once, the phase moves to OVER
// and the result is recorded.
func (g *Game) finish(now time.Time) {
	if !g.phase.EndGame() {
		return
	}
	rec := g.match
	rec.EndedAt = now
	for _, a := range g.world.Avatars {
		g.retire(a, false)
		rec.Winner = a.ID
	}
	for _, p := range g.roster {
		rec.Players = append(rec.Players, *p)
	}
	slices.SortFunc(rec.Players, func(a, b MatchPlayer) int { return strings.Compare(a.AvatarID, b.AvatarID) })
	g.out.Broadcast(GameOverLine)
	log.Printf("game: match %s over after %s, winner %q", rec.ID, rec.Duration().Round(time.Second), rec.Winner)
	g.track(EvtMatchEnd, "", map[string]any{
		"match":    rec.ID,
		"duration": rec.Duration().Seconds(),
		"winner":   rec.Winner,
	})
	if g.matches != nil {
		if err := g.matches.RecordMatch(rec); err != nil {
			log.Printf("game: record match %s: %v", rec.ID, err)
		}
	}
}

func (g *Game) stateLines() []string {
	lines := make([]string, 0, len(g.world.Avatars)+len(g.world.Attacks)+len(g.world.Enemies)+len(g.world.Interactables))
	g.world.Each(func(o *Object) {
		lines = append(lines, StateLine(o))
	})
	return lines
}

// broadcastWorld sends the full world state outside the tick cadence
func (g *Game) broadcastWorld() {
	g.out.Broadcast(g.stateLines()...)
}

func (g *Game) track(evtType, sessionID string, data map[string]any) {
	if g.events == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	g.events.Track(evtType, sessionID, string(raw))
}

// --- request handling, always on the game goroutine ---

// chooseAvatar creates (or replaces) the avatar for a session. Once the
// match has begun the roster is fixed.
func (g *Game) chooseAvatar(sessionID string, kind Kind) error {
	if g.phase.Current() != PhaseLobby {
		return ErrLobbyClosed
	}
	a, err := NewAvatar(kind, sessionID)
	if err != nil {
		return err
	}
	if old := g.world.PutAvatar(a); old != nil && old.ID != a.ID {
		g.out.Broadcast(RemoveLine(old.ID))
	}
	return nil
}

// dropSession removes a departed session's avatar
func (g *Game) dropSession(sessionID string) {
	a := g.world.AvatarBySession(sessionID)
	if a == nil {
		return
	}
	g.world.RemoveAvatar(a.ID)
	g.out.Broadcast(RemoveLine(a.ID))
	if g.phase.Current() == PhaseGame {
		g.retire(a, true)
		g.checkGameOver(g.clock())
	}
}

// withAvatar runs act against the session's avatar. A session without
// one is a no-op.
func (g *Game) withAvatar(sessionID string, act func(a *Avatar, now time.Time)) {
	a := g.world.AvatarBySession(sessionID)
	if a == nil {
		log.Printf("game: no avatar for %s, request dropped", sessionID)
		return
	}
	act(a, g.clock())
}

// fire spawns the avatar's weapon attack toward aim
func (g *Game) fire(a *Avatar, aim Vec, now time.Time) {
	g.world.AddAttack(a.NewAttack(aim, g.rng, now))
}

// ultimate fires the avatar's ultimate if charged
func (g *Game) ultimate(a *Avatar, now time.Time) {
	if at := a.Ultimate(now); at != nil {
		g.world.AddAttack(at)
	}
}
