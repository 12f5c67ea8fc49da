package entities

import (
	"math"
	"testing"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/types"
)

func TestNewZombieEntityDerivesStats(t *testing.T) {
	em := ecs.NewEntityManager()
	tuning := config.DefaultTuning()

	id, err := NewZombieEntity(em, tuning, 3, types.Vec3{X: 8, Y: 1, Z: 0})
	if err != nil {
		t.Fatalf("NewZombieEntity failed: %v", err)
	}

	zombie, ok := ecs.GetComponent[*components.ZombieComponent](em, id)
	if !ok {
		t.Fatal("Zombie component missing")
	}
	if math.Abs(zombie.Speed-1.3) > 1e-9 {
		t.Errorf("Expected speed 1.3, got %f", zombie.Speed)
	}
	if zombie.Damage != 16 {
		t.Errorf("Expected damage 16, got %d", zombie.Damage)
	}
	if zombie.WaveNumber != 3 || zombie.Type != types.ZombieBasic {
		t.Errorf("Unexpected zombie component %+v", zombie)
	}

	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok || health.CurrentHealth != 100 || health.MaxHealth != 100 || !health.IsAlive {
		t.Errorf("Unexpected health component %+v", health)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || !pos.Known || pos.X != 8 || pos.Y != 1 {
		t.Errorf("Unexpected position component %+v", pos)
	}
}

func TestNewZombieEntityRejectsNil(t *testing.T) {
	if _, err := NewZombieEntity(nil, config.DefaultTuning(), 1, types.Vec3{}); err == nil {
		t.Error("Expected error for nil entity manager")
	}
	if _, err := NewZombieEntity(ecs.NewEntityManager(), nil, 1, types.Vec3{}); err == nil {
		t.Error("Expected error for nil tuning")
	}
}
