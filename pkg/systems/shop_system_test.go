package systems

import (
	"testing"
	"time"

	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/types"
)

func newTestShop(world *testWorld) *ShopSystem {
	return NewShopSystem(world.player, world.events, world.clock, world.tuning)
}

func TestShopSystem_OutOfRange(t *testing.T) {
	world := newTestWorld()
	shop := newTestShop(world)

	shop.Update()
	if shop.State().PlayerNear {
		t.Error("Player at origin should not be near the shop")
	}
	if shop.Interact() {
		t.Error("Interact should fail out of range")
	}
	if world.player.HasItem(types.ItemSword) {
		t.Error("Player should not have the sword")
	}
}

func TestShopSystem_HorizontalDistanceOnly(t *testing.T) {
	world := newTestWorld()
	shop := newTestShop(world)

	// 商店在 (8, 3, 8)，高度差不计入距离
	world.player.SetPosition(types.Vec3{X: 8, Y: 0, Z: 10.5}, true)
	shop.Update()
	if !shop.State().PlayerNear {
		t.Error("Expected player at horizontal distance 2.5 to be near")
	}

	world.player.SetPosition(types.Vec3{X: 8, Y: 3, Z: 10.6}, true)
	shop.Update()
	if shop.State().PlayerNear {
		t.Error("Expected player at horizontal distance 2.6 to be out of range")
	}
}

func TestShopSystem_AcquireOnce(t *testing.T) {
	world := newTestWorld()
	shop := newTestShop(world)
	world.player.SetPosition(types.Vec3{X: 7, Y: 1, Z: 7}, true)
	shop.Update()

	if !shop.Interact() {
		t.Fatal("Expected first interaction to give the sword")
	}
	if !world.player.HasItem(types.ItemSword) {
		t.Error("Player should have the sword")
	}
	if shop.Interact() {
		t.Error("Second interaction should not give another sword")
	}

	items := world.player.ListItems()
	if len(items) != 1 || items[0] != types.ItemSword {
		t.Errorf("Expected inventory {Sword}, got %v", items)
	}
	if countEvents(world.events.Drain(), game.EventItemAcquired) != 1 {
		t.Error("Expected one item acquired event")
	}
}

func TestShopSystem_ObtainedMessageDuration(t *testing.T) {
	world := newTestWorld()
	shop := newTestShop(world)
	world.player.SetPosition(types.Vec3{X: 8, Z: 8}, true)
	shop.Update()
	shop.Interact()

	if !shop.State().ShowObtainedMessage {
		t.Error("Expected obtained message right after acquiring")
	}

	world.clock.Advance(1999 * time.Millisecond)
	if !shop.State().ShowObtainedMessage {
		t.Error("Expected obtained message at 1999ms")
	}

	world.clock.Advance(time.Millisecond)
	if shop.State().ShowObtainedMessage {
		t.Error("Expected obtained message hidden at 2000ms")
	}
	if !shop.State().PlayerHasItem {
		t.Error("Expected PlayerHasItem to stay true")
	}
}

func TestShopSystem_Reset(t *testing.T) {
	world := newTestWorld()
	shop := newTestShop(world)
	world.player.SetPosition(types.Vec3{X: 8, Z: 8}, true)
	shop.Update()
	shop.Interact()

	shop.Reset()
	world.player.Reset()

	state := shop.State()
	if state.PlayerNear || state.ShowObtainedMessage || state.PlayerHasItem {
		t.Errorf("Expected cleared shop state, got %+v", state)
	}
}
