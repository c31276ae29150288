package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lightsout/common"
)

// playerState is the interface each concrete player state implements.
type playerState interface {
	Enter(p *Player)
	HandleInput(p *Player)
	OnPhysics(p *Player)
	Name() string
}

const (
	runSpeed      = 7.0
	jumpSpeed     = 11.0
	coyoteTime    = 0.1 // seconds a jump is still allowed after leaving ground
	staggerTime   = 0.25
	hurtFlashTime = 0.15
)

func (p *Player) setState(s playerState) {
	p.state = s
	p.state.Enter(p)
}

type idleState struct{}

func (idleState) Name() string    { return "idle" }
func (idleState) Enter(p *Player) {}
func (idleState) HandleInput(p *Player) {
	if p.Input.JumpPressed {
		p.jump()
		return
	}
	if p.Input.MoveX != 0 {
		p.setState(stateRunning)
	}
}
func (idleState) OnPhysics(p *Player) {
	if !p.Grounded() {
		p.setState(stateFalling)
	}
}

type runningState struct{}

func (runningState) Name() string    { return "running" }
func (runningState) Enter(p *Player) {}
func (runningState) HandleInput(p *Player) {
	if p.Input.JumpPressed {
		p.jump()
		return
	}
	if p.Input.MoveX == 0 {
		p.setState(stateIdle)
	}
}
func (runningState) OnPhysics(p *Player) {
	if !p.Grounded() {
		p.setState(stateFalling)
	}
}

type jumpingState struct{}

func (jumpingState) Name() string          { return "jumping" }
func (jumpingState) Enter(p *Player)       { p.coyoteTimer = 0 }
func (jumpingState) HandleInput(p *Player) {}
func (jumpingState) OnPhysics(p *Player) {
	if p.Velocity.Y <= 0 {
		p.setState(stateFalling)
	}
}

type fallingState struct{}

func (fallingState) Name() string    { return "falling" }
func (fallingState) Enter(p *Player) {}
func (fallingState) HandleInput(p *Player) {
	if p.Input.JumpPressed && p.coyoteTimer > 0 {
		p.jump()
	}
}
func (fallingState) OnPhysics(p *Player) {
	if p.Grounded() {
		p.land()
	}
}

// staggeredState ignores steering while an enemy push plays out.
type staggeredState struct{}

func (staggeredState) Name() string    { return "staggered" }
func (staggeredState) Enter(p *Player) { p.staggerTimer = staggerTime }
func (staggeredState) HandleInput(p *Player) {
	p.Velocity.X = common.Lerp(p.Velocity.X, 0, 0.08)
}
func (staggeredState) OnPhysics(p *Player) {
	if p.staggerTimer <= 0 && p.Grounded() {
		p.land()
	}
}

var (
	stateIdle      playerState = &idleState{}
	stateRunning   playerState = &runningState{}
	stateJumping   playerState = &jumpingState{}
	stateFalling   playerState = &fallingState{}
	stateStaggered playerState = &staggeredState{}
)

// Player is the host-side avatar. The simulation only sees the center
// and velocity reported each frame.
type Player struct {
	Rect
	Velocity cp.Vector
	Input    *Input

	arena        *Arena
	gravity      float64
	state        playerState
	facingRight  bool
	coyoteTimer  float64
	staggerTimer float64
	hurtTimer    float64
}

func NewPlayer(arena *Arena, width, height float64, input *Input) *Player {
	p := &Player{
		Rect:        Rect{Width: width, Height: height},
		Input:       input,
		arena:       arena,
		gravity:     arena.Gravity(),
		facingRight: true,
	}
	p.Reset()
	return p
}

// Reset puts the player back on the level start marker.
func (p *Player) Reset() {
	x, y := p.arena.PlayerStart()
	p.X = x - p.Width/2
	p.Y = y
	p.Velocity = cp.Vector{}
	p.staggerTimer = 0
	p.hurtTimer = 0
	p.facingRight = true
	p.setState(stateIdle)
}

func (p *Player) Update(dt float64) {
	if p.staggerTimer > 0 {
		p.staggerTimer -= dt
	}
	if p.hurtTimer > 0 {
		p.hurtTimer -= dt
	}

	if p.state != stateStaggered {
		p.Velocity.X = runSpeed * p.Input.MoveX
		if p.Input.MoveX < 0 {
			p.facingRight = false
		} else if p.Input.MoveX > 0 {
			p.facingRight = true
		}
	}
	p.state.HandleInput(p)

	p.Velocity.Y += p.gravity * dt
	p.X += p.Velocity.X * dt
	p.Y += p.Velocity.Y * dt
	p.checkBounds()

	if p.Grounded() {
		p.coyoteTimer = coyoteTime
	} else if p.coyoteTimer > 0 {
		p.coyoteTimer -= dt
	}

	p.state.OnPhysics(p)
}

func (p *Player) jump() {
	p.Velocity.Y = jumpSpeed
	p.setState(stateJumping)
}

func (p *Player) land() {
	if p.Input.MoveX != 0 {
		p.setState(stateRunning)
	} else {
		p.setState(stateIdle)
	}
}

func (p *Player) checkBounds() {
	ground := p.arena.GroundY()
	if p.Y <= ground {
		p.Y = ground
		if p.Velocity.Y < 0 {
			p.Velocity.Y = 0
		}
	}
	minX, maxX := p.arena.Bounds()
	if p.X < minX {
		p.X = minX
		p.Velocity.X = 0
	}
	if p.X+p.Width > maxX {
		p.X = maxX - p.Width
		p.Velocity.X = 0
	}
}

// Knockback applies an enemy push. The player loses steering until it
// lands after the stagger time.
func (p *Player) Knockback(impulse cp.Vector) {
	p.Velocity = p.Velocity.Add(impulse)
	p.setState(stateStaggered)
}

func (p *Player) Hurt() {
	p.hurtTimer = hurtFlashTime
}

func (p *Player) Grounded() bool {
	return p.Y <= p.arena.GroundY()+1e-6 && p.Velocity.Y <= 0
}

// Center is the point reported to the simulation.
func (p *Player) Center() cp.Vector {
	return cp.Vector{X: p.X + p.Width/2, Y: p.Y + p.Height/2}
}

// Facing is +1 when facing right and -1 when facing left.
func (p *Player) Facing() float64 {
	if p.facingRight {
		return 1
	}
	return -1
}

func (p *Player) Draw(screen *ebiten.Image) {
	x, y, w, h := p.arena.RectToScreen(p.Rect)
	body := colornames.Crimson
	if p.hurtTimer > 0 {
		body = colornames.White
	}
	vector.FillRect(screen, x, y, w, h, body, false)

	eyeX := x + w*0.65
	if !p.facingRight {
		eyeX = x + w*0.15
	}
	vector.FillRect(screen, eyeX, y+h*0.15, w*0.2, h*0.08, colornames.Black, false)
}
