package session

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/types"
)

// fakePositions 测试用位置来源，未登记的实体视为没有读数
type fakePositions struct {
	player      types.Vec3
	playerKnown bool
	actors      map[ecs.EntityID]types.Vec3
}

func newFakePositions() *fakePositions {
	return &fakePositions{playerKnown: true, actors: make(map[ecs.EntityID]types.Vec3)}
}

func (f *fakePositions) PlayerPosition() (types.Vec3, bool) {
	return f.player, f.playerKnown
}

func (f *fakePositions) ActorPosition(id ecs.EntityID) (types.Vec3, bool) {
	pos, ok := f.actors[id]
	return pos, ok
}

func newTestSession(t *testing.T) (*Session, *game.MockTimeProvider, *fakePositions) {
	t.Helper()
	clock := game.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	positions := newFakePositions()

	s, err := New(Options{
		Clock:     clock,
		Rand:      rand.New(rand.NewSource(1)),
		Positions: positions,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, clock, positions
}

// tickSeconds 以 1 秒为步长推进时钟并执行帧
func tickSeconds(s *Session, clock *game.MockTimeProvider, seconds int) {
	for i := 0; i < seconds; i++ {
		clock.Advance(time.Second)
		s.Tick(1.0)
	}
}

func TestNew_RejectsInvalidTuning(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.Spawn.Radius = -1

	_, err := New(Options{Tuning: tuning})
	if err == nil {
		t.Fatal("Expected error for negative radius")
	}
	if !strings.Contains(err.Error(), "spawn.radius") {
		t.Errorf("Expected error to mention spawn.radius, got %v", err)
	}
}

func TestSession_InitialState(t *testing.T) {
	s, _, _ := newTestSession(t)

	if s.PlayerHealth() != 100 || s.IsGameOver() {
		t.Errorf("Expected full health, got %d gameOver=%v", s.PlayerHealth(), s.IsGameOver())
	}
	if s.Wave() != 1 || s.SecondsUntilNextWave() != 120 {
		t.Errorf("Expected wave 1 with 120s, got wave %d with %ds", s.Wave(), s.SecondsUntilNextWave())
	}
	if s.ZombieCount() != 0 {
		t.Errorf("Expected no zombies, got %d", s.ZombieCount())
	}
}

func TestSession_WaveAdvancesAfterInterval(t *testing.T) {
	s, clock, _ := newTestSession(t)

	tickSeconds(s, clock, 119)
	if s.Wave() != 1 || s.ZombieCount() != 0 {
		t.Fatalf("Expected wave 1 with no zombies at t=119s, got wave %d with %d zombies", s.Wave(), s.ZombieCount())
	}

	tickSeconds(s, clock, 1)
	if s.Wave() != 2 {
		t.Fatalf("Expected wave 2 at t=120s, got %d", s.Wave())
	}
	if s.ZombieCount() != 5 {
		t.Errorf("Expected 5 zombies, got %d", s.ZombieCount())
	}
	if !s.IsWaveActive() {
		t.Error("Expected wave pulse right after spawn")
	}
}

func TestSession_LethalHitScenario(t *testing.T) {
	s, clock, positions := newTestSession(t)

	// 第 5 波伤害为 20
	for s.Wave() < 5 {
		s.StartNewWave()
	}
	zombies := s.Zombies()
	for _, z := range zombies {
		positions.actors[z.ID] = types.Vec3{X: 50, Z: 50}
	}
	last := zombies[len(zombies)-1]
	if last.Damage != 20 {
		t.Fatalf("Expected wave 5 damage 20, got %d", last.Damage)
	}

	// 先把生命值降到 15
	s.player.ApplyDamage(85)
	if s.IsGameOver() || s.PlayerHealth() != 15 {
		t.Fatalf("Expected 15 health, got %d", s.PlayerHealth())
	}

	clock.Advance(16 * time.Millisecond)
	s.Tick(0.016)
	if s.IsGameOver() {
		t.Fatal("Game over before any zombie is in range")
	}

	positions.actors[last.ID] = types.Vec3{X: 0.5}
	clock.Advance(16 * time.Millisecond)
	s.Tick(0.016)

	if s.PlayerHealth() != 0 {
		t.Errorf("Expected health clamped to 0, got %d", s.PlayerHealth())
	}
	if !s.IsGameOver() {
		t.Error("Expected game over on the lethal tick")
	}

	if n := countEvents(s.DrainEvents(), game.EventGameOver); n != 1 {
		t.Errorf("Expected 1 game over event, got %d", n)
	}
	if cmds := s.VelocityCommands(); len(cmds) != 0 {
		t.Errorf("Expected movement suppressed after game over, got %d commands", len(cmds))
	}
}

func TestSession_ResetAfterGameOver(t *testing.T) {
	s, clock, positions := newTestSession(t)

	s.StartNewWave()
	s.GiveItem(types.ItemSword)
	for _, z := range s.Zombies() {
		positions.actors[z.ID] = types.Vec3{X: 0.1}
	}
	for !s.IsGameOver() {
		clock.Advance(time.Second)
		s.Tick(1.0)
	}
	oldGeneration := s.Generation()

	s.ResetGame()

	if s.PlayerHealth() != 100 || s.IsGameOver() {
		t.Errorf("Expected health 100 and not game over, got %d / %v", s.PlayerHealth(), s.IsGameOver())
	}
	if len(s.Items()) != 0 {
		t.Errorf("Expected empty inventory, got %v", s.Items())
	}
	if s.ZombieCount() != 0 {
		t.Errorf("Expected registry cleared, got %d", s.ZombieCount())
	}
	if s.Wave() != 1 || s.SecondsUntilNextWave() != 120 {
		t.Errorf("Expected wave 1 with 120s, got wave %d with %ds", s.Wave(), s.SecondsUntilNextWave())
	}
	if s.Generation() != oldGeneration+1 {
		t.Errorf("Expected generation %d, got %d", oldGeneration+1, s.Generation())
	}

	// 重置前的提示窗口定时器不会再生效，倒计时只走一份
	tickSeconds(s, clock, 3)
	if s.SecondsUntilNextWave() != 117 {
		t.Errorf("Expected 117s after reset, got %d", s.SecondsUntilNextWave())
	}
	if s.IsWaveActive() {
		t.Error("Wave should not be active after reset")
	}
}

func TestSession_PerAttackerCooldown(t *testing.T) {
	s, clock, positions := newTestSession(t)

	s.StartNewWave() // 第 2 波：5 个僵尸，伤害 14
	zombies := s.Zombies()
	for _, z := range zombies {
		positions.actors[z.ID] = types.Vec3{X: 40}
	}

	positions.actors[zombies[0].ID] = types.Vec3{X: 1}
	s.Tick(0)
	if s.PlayerHealth() != 86 {
		t.Fatalf("Expected 86 after first hit, got %d", s.PlayerHealth())
	}

	clock.Advance(time.Millisecond)
	positions.actors[zombies[1].ID] = types.Vec3{Z: 1}
	s.Tick(0.001)
	if s.PlayerHealth() != 72 {
		t.Fatalf("Expected second zombie to hit independently, got %d", s.PlayerHealth())
	}

	clock.Advance(998 * time.Millisecond)
	s.Tick(0.998)
	if s.PlayerHealth() != 72 {
		t.Fatalf("Expected no hits within cooldown, got %d", s.PlayerHealth())
	}

	clock.Advance(time.Millisecond)
	s.Tick(0.001)
	if s.PlayerHealth() != 58 {
		t.Errorf("Expected first zombie to hit again at t0+1000ms, got %d", s.PlayerHealth())
	}
}

func TestSession_RemoveZombieForgetsCooldown(t *testing.T) {
	s, _, positions := newTestSession(t)
	s.StartNewWave()
	z := s.Zombies()[0]
	positions.actors[z.ID] = types.Vec3{X: 0.5}

	s.Tick(0)
	if !s.RemoveZombie(z.ID) {
		t.Fatal("Expected RemoveZombie to succeed")
	}
	if !s.player.CanTakeDamageFrom(z.ID, time.Time{}, time.Hour) {
		t.Error("Removed attacker should not keep a cooldown entry")
	}
	if s.ZombieCount() != 4 {
		t.Errorf("Expected 4 zombies, got %d", s.ZombieCount())
	}
}

func TestSession_MissingPositionSkipsActor(t *testing.T) {
	s, _, positions := newTestSession(t)
	s.StartNewWave()
	zombies := s.Zombies()

	positions.actors[zombies[0].ID] = types.Vec3{X: 5}
	s.Tick(0.016)

	cmds := s.VelocityCommands()
	if len(cmds) != 1 || cmds[0].ID != zombies[0].ID {
		t.Errorf("Expected only the zombie with a reading to move, got %+v", cmds)
	}
}

func TestSession_ShopAndAttack(t *testing.T) {
	s, clock, positions := newTestSession(t)

	if s.Attack() != 0 {
		t.Error("Attack without a sword should do nothing")
	}

	positions.player = types.Vec3{X: 8, Y: 1, Z: 8}
	s.Tick(0)
	if !s.ShopState().PlayerNear {
		t.Fatal("Expected player near the shop")
	}
	if !s.Interact() {
		t.Fatal("Expected to obtain the sword")
	}
	if !s.HasItem(types.ItemSword) {
		t.Error("Expected sword in inventory")
	}

	s.StartNewWave()
	z := s.Zombies()[0]
	positions.actors[z.ID] = types.Vec3{X: 9, Z: 8}
	s.Tick(0)

	if hits := s.Attack(); hits != 1 {
		t.Fatalf("Expected 1 hit, got %d", hits)
	}
	clock.Advance(time.Second)
	s.Attack()

	if s.ZombieCount() != 5 || s.AliveZombieCount() != 4 {
		t.Errorf("Expected dead zombie kept in registry, got count=%d alive=%d", s.ZombieCount(), s.AliveZombieCount())
	}
}

func TestSession_ApplyTuning(t *testing.T) {
	s, clock, _ := newTestSession(t)

	bad := config.DefaultTuning()
	bad.Steering.MaxSpeed = 0
	if err := s.ApplyTuning(bad); err == nil {
		t.Error("Expected invalid tuning to be rejected")
	}

	tuning := config.DefaultTuning()
	tuning.Wave.Interval = config.Duration(30 * time.Second)
	tuning.Spawn.BaseCount = 10
	if err := s.ApplyTuning(tuning); err != nil {
		t.Fatalf("ApplyTuning error: %v", err)
	}

	// 当前倒计时不变，下一次重置开始使用新间隔
	tickSeconds(s, clock, 120)
	if s.Wave() != 2 {
		t.Fatalf("Expected wave 2, got %d", s.Wave())
	}
	if s.ZombieCount() != 13 {
		t.Errorf("Expected floor(10+2*1.5)=13 zombies, got %d", s.ZombieCount())
	}
	if s.SecondsUntilNextWave() != 30 {
		t.Errorf("Expected new interval 30s, got %d", s.SecondsUntilNextWave())
	}
}

func TestSession_PlayerIntent(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.SetMoveKeys(true, false, false, true)
	s.RequestJump()

	intent := s.PlayerIntent()
	if intent.X != 0.707 || intent.Z != -0.707 || !intent.Jump {
		t.Errorf("Unexpected intent %+v", intent)
	}
	if s.PlayerIntent().Jump {
		t.Error("Jump should be consumed")
	}
}

func countEvents(events []game.Event, typ game.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestSession_ApplyTuningLowersMaxHealth(t *testing.T) {
	s, _, _ := newTestSession(t)

	tuning := config.DefaultTuning()
	tuning.Player.MaxHealth = 40
	if err := s.ApplyTuning(tuning); err != nil {
		t.Fatalf("ApplyTuning error: %v", err)
	}

	if s.PlayerMaxHealth() != 40 || s.PlayerHealth() != 40 {
		t.Errorf("Expected health clamped to 40/40, got %d/%d", s.PlayerHealth(), s.PlayerMaxHealth())
	}
	if s.IsGameOver() {
		t.Error("Lowering max health should not end the game")
	}
}
