// Package physics 竞技场的刚体模拟
//
// 水平面 (X, Z) 交给 chipmunk 空间解算碰撞：cp 的 X 轴对应世界 X，cp 的 Y 轴对应世界 Z。
// 竖直方向只有重力和地面，单独积分。
package physics

import (
	"log"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/systems"
	"github.com/decker502/survival/pkg/types"
	"github.com/jakecoffman/cp"
)

const (
	// ZombieRadius 僵尸碰撞半径
	ZombieRadius = 0.4
	// PlayerRadius 玩家碰撞半径
	PlayerRadius = 0.5
	// ArenaHalfSize 竞技场边界（正方形半边长）
	ArenaHalfSize = 20.0

	gravity    = -9.81
	bodyMass   = 1.0
	iterations = 20
	wallRadius = 0.5
)

// body 一个刚体：水平部分在 cp 中，竖直部分自己积分
type body struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	y      float64
	vy     float64
}

func (b *body) grounded() bool {
	return b.y <= b.radius && b.vy <= 0
}

func (b *body) position() types.Vec3 {
	p := b.body.Position()
	return types.Vec3{X: p.X, Y: b.y, Z: p.Y}
}

// World 竞技场物理世界
//
// 每帧的调用顺序：
//  1. Sync 让刚体集合与僵尸注册表一致
//  2. ApplyCommands / ApplyPlayerIntent 施加模拟层的指令
//  3. Step 推进物理
//
// 之后 session 在下一帧开始时通过 PlayerPosition / ActorPosition 读取解算结果。
type World struct {
	space  *cp.Space
	tuning *config.TuningConfig

	player *body
	actors map[ecs.EntityID]*body
}

// NewWorld 创建物理世界，玩家位于原点
func NewWorld(tuning *config.TuningConfig) *World {
	space := cp.NewSpace()
	space.Iterations = iterations
	space.SetGravity(cp.Vector{})

	w := &World{
		space:  space,
		tuning: tuning,
		actors: make(map[ecs.EntityID]*body),
	}
	w.createBounds()
	w.player = w.newBody(types.Vec3{Y: PlayerRadius}, PlayerRadius)
	return w
}

// SetTuning 替换调参
func (w *World) SetTuning(tuning *config.TuningConfig) {
	w.tuning = tuning
}

// createBounds 四面墙
func (w *World) createBounds() {
	h := ArenaHalfSize
	segments := []struct{ a, b cp.Vector }{
		{cp.Vector{X: -h, Y: -h}, cp.Vector{X: h, Y: -h}},
		{cp.Vector{X: -h, Y: h}, cp.Vector{X: h, Y: h}},
		{cp.Vector{X: -h, Y: -h}, cp.Vector{X: -h, Y: h}},
		{cp.Vector{X: h, Y: -h}, cp.Vector{X: h, Y: h}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, wallRadius)
		shape.SetFriction(0.8)
		w.space.AddShape(shape)
	}
}

func (w *World) newBody(pos types.Vec3, radius float64) *body {
	b := cp.NewBody(bodyMass, cp.MomentForCircle(bodyMass, 0, radius, cp.Vector{}))
	b.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})

	shape := cp.NewCircle(b, radius, cp.Vector{})
	shape.SetFriction(0.3)
	shape.SetElasticity(0)

	w.space.AddBody(b)
	w.space.AddShape(shape)

	return &body{body: b, shape: shape, radius: radius, y: pos.Y}
}

func (w *World) removeBody(b *body) {
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

// Sync 为新僵尸创建刚体，删除已经不在注册表中的僵尸的刚体
func (w *World) Sync(zombies []systems.Zombie) {
	seen := make(map[ecs.EntityID]struct{}, len(zombies))
	for _, z := range zombies {
		seen[z.ID] = struct{}{}
		if _, ok := w.actors[z.ID]; ok {
			continue
		}
		w.actors[z.ID] = w.newBody(z.Position, ZombieRadius)
	}

	for id, b := range w.actors {
		if _, ok := seen[id]; ok {
			continue
		}
		w.removeBody(b)
		delete(w.actors, id)
	}
}

// ApplyCommands 把速度指令写入僵尸刚体的水平速度
// 没有指令的僵尸（死亡、游戏结束）原地停下
func (w *World) ApplyCommands(cmds []systems.VelocityCommand) {
	commanded := make(map[ecs.EntityID]systems.VelocityCommand, len(cmds))
	for _, c := range cmds {
		commanded[c.ID] = c
	}

	for id, b := range w.actors {
		if c, ok := commanded[id]; ok {
			b.body.SetVelocity(c.VX, c.VZ)
			continue
		}
		b.body.SetVelocityVector(cp.Vector{})
	}
}

// ApplyPlayerIntent 施加玩家移动意图
//
// 水平速度每帧先乘以 damping，再施加 moveSpeed*(1-damping) 的冲量，
// 持续按键时速度收敛到 moveSpeed。着地时才能起跳。
func (w *World) ApplyPlayerIntent(intent game.MoveIntent) {
	p := w.player.body
	damping := w.tuning.Player.Damping
	speed := w.tuning.Player.MoveSpeed

	p.SetVelocityVector(p.Velocity().Mult(damping))

	impulse := cp.Vector{X: intent.X, Y: intent.Z}.Mult(speed * (1 - damping) * p.Mass())
	if impulse.X != 0 || impulse.Y != 0 {
		p.ApplyImpulseAtWorldPoint(impulse, p.Position())
	}

	if intent.Jump && w.player.grounded() {
		w.player.vy = w.tuning.Player.JumpForce
	}
}

// Step 推进物理 dt 秒
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	w.space.Step(dt)

	w.integrateVertical(w.player, dt)
	for _, b := range w.actors {
		w.integrateVertical(b, dt)
	}
}

func (w *World) integrateVertical(b *body, dt float64) {
	b.vy += gravity * dt
	b.y += b.vy * dt
	if b.y <= b.radius {
		b.y = b.radius
		b.vy = 0
	}
}

// ResetPlayer 把玩家放回原点并清除速度
func (w *World) ResetPlayer() {
	w.player.body.SetPosition(cp.Vector{})
	w.player.body.SetVelocityVector(cp.Vector{})
	w.player.y = PlayerRadius
	w.player.vy = 0
	log.Printf("[Physics] Player reset to origin")
}

// PlayerPosition 玩家当前位置
func (w *World) PlayerPosition() (types.Vec3, bool) {
	return w.player.position(), true
}

// ActorPosition 僵尸当前位置；尚未创建刚体时返回 false
func (w *World) ActorPosition(id ecs.EntityID) (types.Vec3, bool) {
	b, ok := w.actors[id]
	if !ok {
		return types.Vec3{}, false
	}
	return b.position(), true
}

// BodyCount 僵尸刚体数量
func (w *World) BodyCount() int {
	return len(w.actors)
}
